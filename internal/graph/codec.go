package graph

import (
	"encoding/json"
	"math"
)

// The wire shape follows the web editor's node/edge attribute bags: optional
// fields are pointers so an absent value can be told apart from a zero one
// exactly once, when the entity enters the model.

type nodeWire struct {
	ID       string          `json:"id"`
	Type     string          `json:"type,omitempty"`
	Position Point           `json:"position"`
	Width    *float64        `json:"width,omitempty"`
	Height   *float64        `json:"height,omitempty"`
	Data     nodeDataWire    `json:"data"`
	Style    json.RawMessage `json:"style,omitempty"`
}

type nodeDataWire struct {
	Label              *string  `json:"label,omitempty"`
	Color              *string  `json:"color,omitempty"`
	WrapperEnabled     *bool    `json:"wrapperEnabled,omitempty"`
	CardColor          *string  `json:"cardColor,omitempty"`
	BorderColor        *string  `json:"borderColor,omitempty"`
	Image              *string  `json:"image,omitempty"`
	ImageSize          *int     `json:"imageSize,omitempty"`
	Link               *string  `json:"link,omitempty"`
	LinkFontSize       *int     `json:"linkFontSize,omitempty"`
	Shape              *Shape   `json:"shape,omitempty"`
	Rotation           *float64 `json:"rotation,omitempty"`
	Width              *float64 `json:"width,omitempty"`
	Height             *float64 `json:"height,omitempty"`
	LabelFontSize      *int     `json:"labelFontSize,omitempty"`
	LabelColor         *string  `json:"labelColor,omitempty"`
	TopText            *string  `json:"topText,omitempty"`
	TopTextColor       *string  `json:"topTextColor,omitempty"`
	TopTextFontSize    *int     `json:"topTextFontSize,omitempty"`
	BottomText         *string  `json:"bottomText,omitempty"`
	BottomTextColor    *string  `json:"bottomTextColor,omitempty"`
	BottomTextFontSize *int     `json:"bottomTextFontSize,omitempty"`
	Collapsed          *bool    `json:"collapsed,omitempty"`
	DragWithChildren   *bool    `json:"dragWithChildren,omitempty"`
}

type edgeWire struct {
	ID     string       `json:"id"`
	Source string       `json:"source"`
	Target string       `json:"target"`
	Type   string       `json:"type,omitempty"`
	Data   edgeDataWire `json:"data"`
}

type edgeDataWire struct {
	Style             *StrokeStyle `json:"style,omitempty"`
	Color             *string      `json:"color,omitempty"`
	StrokeWidth       *float64     `json:"strokeWidth,omitempty"`
	Label             *string      `json:"label,omitempty"`
	LabelColor        *string      `json:"labelColor,omitempty"`
	LabelFontSize     *int         `json:"labelFontSize,omitempty"`
	LabelRotation     *float64     `json:"labelRotation,omitempty"`
	LabelWrapperColor *string      `json:"labelWrapperColor,omitempty"`
	LabelWrapperSize  *WrapperSize `json:"labelWrapperSize,omitempty"`
}

func str(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func num(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func flt(p *float64, def float64) float64 {
	if p == nil || math.IsNaN(*p) {
		return def
	}
	return *p
}

func flag(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// resolveNode is the single place node defaults are applied.
func resolveNode(w nodeWire) Node {
	d := w.Data
	shape := ShapeRectangle
	if d.Shape != nil && d.Shape.Valid() {
		shape = *d.Shape
	}

	// The persisted data size wins over the top-level one.
	width := flt(d.Width, flt(w.Width, DefaultNodeWidth))
	height := flt(d.Height, flt(w.Height, DefaultNodeHeight))

	n := Node{
		ID:       w.ID,
		Type:     w.Type,
		Position: w.Position,
		Style:    w.Style,
		Data: NodeData{
			Label:              str(d.Label, ""),
			Color:              str(d.Color, ""),
			WrapperEnabled:     flag(d.WrapperEnabled, true),
			CardColor:          str(d.CardColor, DefaultCardColor),
			BorderColor:        str(d.BorderColor, ""),
			Image:              str(d.Image, ""),
			ImageSize:          ClampImageSize(num(d.ImageSize, DefaultImageSize)),
			Link:               str(d.Link, ""),
			LinkFontSize:       num(d.LinkFontSize, DefaultLinkFontSize),
			Shape:              shape,
			Rotation:           flt(d.Rotation, 0),
			LabelFontSize:      num(d.LabelFontSize, DefaultLabelFontSize),
			LabelColor:         str(d.LabelColor, DefaultLabelColor),
			TopText:            str(d.TopText, ""),
			TopTextColor:       str(d.TopTextColor, DefaultLabelColor),
			TopTextFontSize:    num(d.TopTextFontSize, DefaultCaptionFontSize),
			BottomText:         str(d.BottomText, ""),
			BottomTextColor:    str(d.BottomTextColor, DefaultLabelColor),
			BottomTextFontSize: num(d.BottomTextFontSize, DefaultCaptionFontSize),
			Collapsed:          flag(d.Collapsed, false),
			DragWithChildren:   flag(d.DragWithChildren, true),
		},
	}
	if n.Type == "" {
		n.Type = "default"
	}
	n.SetSize(width, height)
	return n
}

func resolveEdge(w edgeWire) Edge {
	d := w.Data
	style := StrokeSolid
	if d.Style != nil {
		switch *d.Style {
		case StrokeSolid, StrokeDashed, StrokeDotted:
			style = *d.Style
		}
	}
	size := WrapperMedium
	if d.LabelWrapperSize != nil {
		switch *d.LabelWrapperSize {
		case WrapperSmall, WrapperMedium, WrapperLarge:
			size = *d.LabelWrapperSize
		}
	}
	e := Edge{
		ID:     w.ID,
		Source: w.Source,
		Target: w.Target,
		Type:   PathType(w.Type),
		Data: EdgeData{
			Style:             style,
			Color:             str(d.Color, DefaultEdgeColor),
			StrokeWidth:       flt(d.StrokeWidth, DefaultEdgeStrokeWidth),
			Label:             str(d.Label, ""),
			LabelColor:        str(d.LabelColor, DefaultLabelColor),
			LabelFontSize:     num(d.LabelFontSize, DefaultEdgeLabelFontSize),
			LabelRotation:     flt(d.LabelRotation, 0),
			LabelWrapperColor: str(d.LabelWrapperColor, DefaultWrapperColor),
			LabelWrapperSize:  size,
		},
	}
	e.Type = e.Path()
	return e
}

// NewNode builds a node with every default resolved.
func NewNode(id string, pos Point, label string) Node {
	return resolveNode(nodeWire{ID: id, Position: pos, Data: nodeDataWire{Label: &label}})
}

// NewEdge builds an edge with default routing and style.
func NewEdge(id, source, target string) Edge {
	return resolveEdge(edgeWire{ID: id, Source: source, Target: target})
}

func (n Node) MarshalJSON() ([]byte, error) {
	d := n.Data
	w := nodeWire{
		ID:       n.ID,
		Type:     n.Type,
		Position: n.Position,
		Width:    &n.Width,
		Height:   &n.Height,
		Style:    n.Style,
		Data: nodeDataWire{
			Label:              &d.Label,
			WrapperEnabled:     &d.WrapperEnabled,
			CardColor:          &d.CardColor,
			ImageSize:          &d.ImageSize,
			LinkFontSize:       &d.LinkFontSize,
			Shape:              &d.Shape,
			Rotation:           &d.Rotation,
			Width:              &d.Width,
			Height:             &d.Height,
			LabelFontSize:      &d.LabelFontSize,
			LabelColor:         &d.LabelColor,
			TopTextColor:       &d.TopTextColor,
			TopTextFontSize:    &d.TopTextFontSize,
			BottomTextColor:    &d.BottomTextColor,
			BottomTextFontSize: &d.BottomTextFontSize,
			Collapsed:          &d.Collapsed,
			DragWithChildren:   &d.DragWithChildren,
		},
	}
	// Empty optional strings stay absent so "unset" survives a round trip.
	w.Data.Color = optional(d.Color)
	w.Data.BorderColor = optional(d.BorderColor)
	w.Data.Image = optional(d.Image)
	w.Data.Link = optional(d.Link)
	w.Data.TopText = optional(d.TopText)
	w.Data.BottomText = optional(d.BottomText)
	return json.Marshal(w)
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var w nodeWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*n = resolveNode(w)
	return nil
}

func (e Edge) MarshalJSON() ([]byte, error) {
	d := e.Data
	w := edgeWire{
		ID:     e.ID,
		Source: e.Source,
		Target: e.Target,
		Data: edgeDataWire{
			Style:             &d.Style,
			Color:             &d.Color,
			StrokeWidth:       &d.StrokeWidth,
			Label:             optional(d.Label),
			LabelColor:        &d.LabelColor,
			LabelFontSize:     &d.LabelFontSize,
			LabelRotation:     &d.LabelRotation,
			LabelWrapperColor: &d.LabelWrapperColor,
			LabelWrapperSize:  &d.LabelWrapperSize,
		},
	}
	// Bezier is written as an absent type, as the web editor does.
	if p := e.Path(); p != PathBezier {
		w.Type = string(p)
	}
	return json.Marshal(w)
}

func (e *Edge) UnmarshalJSON(b []byte) error {
	var w edgeWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*e = resolveEdge(w)
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
