package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"neonmap/internal/apperr"
)

// Adapter is the persistence boundary of the editor. Load and Update fail
// with a NotFound or Forbidden apperr.Error; graph integrity is not checked.
type Adapter interface {
	Load(ctx context.Context, id ID) (*Record, error)
	Create(ctx context.Context, rec NewRecord) (*Record, error)
	Update(ctx context.Context, id ID, patch Patch) (*Record, error)
	List(ctx context.Context, f Filter) ([]Summary, error)
	Delete(ctx context.Context, id ID) error
	Close() error
}

// Principal is the user a request is made on behalf of.
type Principal struct {
	User       int64
	Workspaces []int64
	Projects   []int64
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

func member(ids []int64, id *int64) bool {
	return id != nil && slices.Contains(ids, *id)
}

// CanAccess reports whether p may read and write r. The owner always may; a
// personal map is owner-only; otherwise membership of the map's workspace or
// project grants access.
func (p Principal) CanAccess(r *Record) bool {
	switch {
	case r.Owner == p.User:
		return true
	case r.IsPersonal:
		return false
	}
	return member(p.Workspaces, r.Workspace) || member(p.Projects, r.Project)
}

// CanList reports whether r shows up in p's listings: their own personal
// maps and shared maps of their workspaces and projects.
func (p Principal) CanList(r *Record) bool {
	if r.IsPersonal {
		return r.Owner == p.User
	}
	return member(p.Workspaces, r.Workspace) || member(p.Projects, r.Project)
}

var validate = validator.New()

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Internal(err, "validate")
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldMessage(e))
	}
	return apperr.Validation(strings.Join(msgs, "; "))
}

func fieldMessage(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// PrepareCreate normalizes and validates a create request.
func PrepareCreate(rec *NewRecord) error {
	rec.Normalize()
	return validateStruct(rec)
}

// PreparePatch normalizes and validates a partial update.
func PreparePatch(p *Patch) error {
	p.Normalize()
	if p.Empty() {
		return apperr.Validation("nothing to update")
	}
	return validateStruct(p)
}
