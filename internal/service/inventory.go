package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
	apperrors "github.com/DimpleKundu/incubyte-sweet-shop/internal/errors"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/ports"
	"golang.org/x/sync/errgroup"
)

// InventoryServiceOptions groups dependencies for InventoryService.
type InventoryServiceOptions struct {
	API     ports.ShopAPI     // Required: remote catalog, stock and who-am-I endpoints
	Mirrors ports.MirrorStore // Required: per-session list mirror
	Logger  *slog.Logger      // Optional: structured logger
}

// InventoryService drives the dashboard: it loads the catalog, answers
// searches from the session's mirror, and forwards mutations to the API,
// patching the mirror only after the API acknowledges them.
type InventoryService struct {
	api     ports.ShopAPI
	mirrors ports.MirrorStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewInventoryService constructs a new InventoryService.
func NewInventoryService(opts InventoryServiceOptions) *InventoryService {
	if opts.API == nil {
		panic("ShopAPI is required")
	}
	if opts.Mirrors == nil {
		panic("MirrorStore is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryService{
		api:     opts.API,
		mirrors: opts.Mirrors,
		logger:  logger.With("component", "inventory_service"),
		now:     time.Now,
	}
}

// Dashboard is the data needed to render the inventory page.
type Dashboard struct {
	User   domainauth.User
	Mirror model.Mirror
}

// Load fetches the catalog and the current user concurrently and stores the
// catalog as the session's mirror. Either API failure fails the whole load; a
// mirror that cannot be stored only costs a refetch on the next read.
func (s *InventoryService) Load(ctx context.Context, sess domainauth.Session) (*Dashboard, error) {
	var (
		sweets []model.Sweet
		user   domainauth.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sweets, err = s.api.ListSweets(gctx, sess.Token)
		if err != nil {
			return fmt.Errorf("list sweets: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		user, err = s.api.Me(gctx, sess.Token)
		if err != nil {
			return fmt.Errorf("fetch current user: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mirror := model.NewMirror(sweets, s.now())
	s.store(ctx, sess.ID, mirror)

	return &Dashboard{User: user, Mirror: mirror}, nil
}

// Mirror returns the session's mirror, fetching the catalog again only when
// no mirror is held (first visit after expiry or store eviction).
func (s *InventoryService) Mirror(ctx context.Context, sess domainauth.Session) (model.Mirror, error) {
	m, err := s.mirrors.Get(ctx, sess.ID)
	if err == nil {
		return m, nil
	}
	s.logger.DebugContext(ctx, "mirror unavailable, refetching", "error", err)
	return s.refresh(ctx, sess)
}

// Search filters the session's mirror by name. It never asks the API to search.
func (s *InventoryService) Search(ctx context.Context, sess domainauth.Session, query string) ([]model.Sweet, error) {
	m, err := s.Mirror(ctx, sess)
	if err != nil {
		return nil, err
	}
	return m.Filter(query), nil
}

// Get returns one sweet from the session's mirror.
func (s *InventoryService) Get(ctx context.Context, sess domainauth.Session, id string) (model.Sweet, error) {
	m, err := s.Mirror(ctx, sess)
	if err != nil {
		return model.Sweet{}, err
	}
	sweet, ok := m.Find(id)
	if !ok {
		return model.Sweet{}, apperrors.NotFoundf("sweet %q not found", id)
	}
	return sweet, nil
}

// Purchase buys one unit and decrements the mirror by exactly one on success.
func (s *InventoryService) Purchase(ctx context.Context, sess domainauth.Session, id string) (model.Mirror, error) {
	if err := s.api.Purchase(ctx, sess.Token, id); err != nil {
		return model.Mirror{}, fmt.Errorf("purchase %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "sweet purchased", "sweet_id", id, "email", sess.Email)
	return s.patch(ctx, sess, func(m *model.Mirror) { m.ApplyPurchase(id) }), nil
}

// Restock adds amount units (admin only; the API enforces the role).
func (s *InventoryService) Restock(ctx context.Context, sess domainauth.Session, id string, amount int) (model.Mirror, error) {
	if amount <= 0 {
		return model.Mirror{}, apperrors.ValidationField("amount", "Amount must be positive.")
	}
	if err := s.api.Restock(ctx, sess.Token, id, amount); err != nil {
		return model.Mirror{}, fmt.Errorf("restock %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "sweet restocked", "sweet_id", id, "amount", amount)
	return s.patch(ctx, sess, func(m *model.Mirror) { m.ApplyRestock(id, amount) }), nil
}

// Create adds a sweet and appends the API's answer to the mirror.
func (s *InventoryService) Create(ctx context.Context, sess domainauth.Session, in model.SweetInput) (model.Sweet, error) {
	if err := in.Validate(); err != nil {
		return model.Sweet{}, apperrors.Validation(err.Error())
	}
	created, err := s.api.CreateSweet(ctx, sess.Token, in)
	if err != nil {
		return model.Sweet{}, fmt.Errorf("create sweet: %w", err)
	}
	s.logger.InfoContext(ctx, "sweet created", "sweet_id", created.ID, "name", created.Name)
	s.patch(ctx, sess, func(m *model.Mirror) { m.Append(created) })
	return created, nil
}

// Update edits a sweet and replaces the mirror entry with the API's answer.
func (s *InventoryService) Update(
	ctx context.Context,
	sess domainauth.Session,
	id string,
	in model.SweetInput,
) (model.Sweet, error) {
	if err := in.Validate(); err != nil {
		return model.Sweet{}, apperrors.Validation(err.Error())
	}
	updated, err := s.api.UpdateSweet(ctx, sess.Token, id, in)
	if err != nil {
		return model.Sweet{}, fmt.Errorf("update sweet %s: %w", id, err)
	}
	if updated.ID == "" {
		updated.ID = id
	}
	s.logger.InfoContext(ctx, "sweet updated", "sweet_id", id)
	s.patch(ctx, sess, func(m *model.Mirror) { m.Replace(updated) })
	return updated, nil
}

// Delete removes a sweet; on failure the mirror is left untouched.
func (s *InventoryService) Delete(ctx context.Context, sess domainauth.Session, id string) (model.Mirror, error) {
	if err := s.api.DeleteSweet(ctx, sess.Token, id); err != nil {
		return model.Mirror{}, fmt.Errorf("delete sweet %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "sweet deleted", "sweet_id", id)
	return s.patch(ctx, sess, func(m *model.Mirror) { m.Remove(id) }), nil
}

// Forget drops the session's mirror (logout, forced logout).
func (s *InventoryService) Forget(ctx context.Context, sessionID string) error {
	if err := s.mirrors.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete mirror: %w", err)
	}
	return nil
}

// List fetches the catalog straight from the API without touching any mirror.
func (s *InventoryService) List(ctx context.Context, token string) ([]model.Sweet, error) {
	sweets, err := s.api.ListSweets(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list sweets: %w", err)
	}
	return sweets, nil
}

// BulkCreate validates every input and creates them in one API call.
func (s *InventoryService) BulkCreate(ctx context.Context, token string, in []model.SweetInput) ([]model.Sweet, error) {
	if len(in) == 0 {
		return nil, apperrors.Validation("no sweets to create")
	}
	var errs []error
	for i := range in {
		if err := in[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("sweet %d (%q): %w", i+1, in[i].Name, err))
		}
	}
	if len(errs) > 0 {
		return nil, apperrors.Wrap(errors.Join(errs...), apperrors.ErrCodeValidation, "validate sweets")
	}
	created, err := s.api.CreateSweets(ctx, token, in)
	if err != nil {
		return nil, fmt.Errorf("bulk create sweets: %w", err)
	}
	return created, nil
}

// patch applies fn to the stored mirror after an acknowledged mutation. When
// no mirror is held the catalog is refetched instead, which already reflects
// the mutation.
//
// The mutation has happened by now, so nothing here fails it. If the mirror
// cannot be brought up to date it is dropped and the next read refetches. The
// returned mirror is not Loaded when no list could be produced at all.
func (s *InventoryService) patch(ctx context.Context, sess domainauth.Session, fn func(*model.Mirror)) model.Mirror {
	m, err := s.mirrors.Get(ctx, sess.ID)
	if err == nil {
		fn(&m)
		err = s.mirrors.Save(ctx, sess.ID, m)
		if err == nil {
			return m
		}
	} else {
		s.logger.DebugContext(ctx, "mirror unavailable after mutation, refetching", "error", err)
		var sweets []model.Sweet
		if sweets, err = s.api.ListSweets(ctx, sess.Token); err == nil {
			m = model.NewMirror(sweets, s.now())
			if err = s.mirrors.Save(ctx, sess.ID, m); err == nil {
				return m
			}
		} else {
			m = model.Mirror{}
		}
	}

	s.logger.WarnContext(ctx, "mirror not updated after mutation, dropping it", "error", err)
	if delErr := s.mirrors.Delete(ctx, sess.ID); delErr != nil {
		s.logger.WarnContext(ctx, "drop stale mirror", "error", delErr)
	}
	return m
}

func (s *InventoryService) refresh(ctx context.Context, sess domainauth.Session) (model.Mirror, error) {
	sweets, err := s.api.ListSweets(ctx, sess.Token)
	if err != nil {
		return model.Mirror{}, fmt.Errorf("list sweets: %w", err)
	}
	m := model.NewMirror(sweets, s.now())
	s.store(ctx, sess.ID, m)
	return m, nil
}

// store saves a freshly fetched mirror. A store outage is logged, not
// returned: the list in hand is still correct and the next read refetches.
func (s *InventoryService) store(ctx context.Context, sessionID string, m model.Mirror) {
	if err := s.mirrors.Save(ctx, sessionID, m); err != nil {
		s.logger.WarnContext(ctx, "save mirror", "error", err)
	}
}
