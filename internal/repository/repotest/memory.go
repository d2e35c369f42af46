// Package repotest provides an in-memory implementation of the repository interfaces
// for service and handler tests. It enforces the same invariants as the Postgres schema:
// unique slug and WhatsApp, single-use codes, cascade delete of products, and the
// outer/inner province join split of the catalog.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"marketplace-service/internal/model"
	"marketplace-service/internal/repository"
	"marketplace-service/pkg/slug"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Memory holds every table. Its accessor methods return views that implement one
// repository interface each.
type Memory struct {
	mu sync.Mutex

	stores    map[uuid.UUID]*model.Store
	products  map[uint]*model.Product
	provinces map[uint]*model.Province
	codes     map[uint]*model.ActivationCode
	settings  map[string]string

	nextProductID  uint
	nextProvinceID uint
	nextCodeID     uint
	clock          time.Time

	// Suffix picks the slug disambiguator; tests may replace it
	Suffix func() int
}

// NewMemory returns an empty database
func NewMemory() *Memory {
	suffix := 0
	return &Memory{
		stores:    map[uuid.UUID]*model.Store{},
		products:  map[uint]*model.Product{},
		provinces: map[uint]*model.Province{},
		codes:     map[uint]*model.ActivationCode{},
		settings:  map[string]string{},
		clock:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Suffix: func() int {
			suffix++
			return suffix % 1000
		},
	}
}

// tick returns strictly increasing timestamps so ordering is deterministic
func (m *Memory) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *Memory) Stores() repository.StoreRepository              { return storeRepo{m} }
func (m *Memory) Products() repository.ProductRepository          { return productRepo{m} }
func (m *Memory) Catalog() repository.CatalogRepository           { return catalogRepo{m} }
func (m *Memory) Licenses() repository.LicenseRepository          { return licenseRepo{m} }
func (m *Memory) Settings() repository.SettingsRepository         { return settingsRepo{m} }
func (m *Memory) Registration() repository.RegistrationRepository { return registrationRepo{m} }

// AddProvince inserts a province and returns its id
func (m *Memory) AddProvince(name string) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextProvinceID++
	m.provinces[m.nextProvinceID] = &model.Province{ID: m.nextProvinceID, Name: name}
	return m.nextProvinceID
}

// AddCode inserts an activation code
func (m *Memory) AddCode(code string) *model.ActivationCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextCodeID++
	row := &model.ActivationCode{ID: m.nextCodeID, Code: code, CreatedAt: m.tick()}
	m.codes[row.ID] = row
	return row
}

// AddStore inserts a store directly, bypassing registration
func (m *Memory) AddStore(store model.Store) *model.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	if store.Slug == "" {
		store.Slug = slug.Make(store.Name)
	}
	store.CreatedAt = m.tick()
	m.stores[store.ID] = &store
	cp := store
	return &cp
}

// StoreCount returns the number of stores
func (m *Memory) StoreCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}

// CodeCount returns the number of unredeemed codes
func (m *Memory) CodeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.codes)
}

// Product returns a copy of a product row
func (m *Memory) Product(id uint) (model.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return model.Product{}, false
	}
	return *p, true
}

// Store returns a copy of a store row
func (m *Memory) Store(id uuid.UUID) (model.Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[id]
	if !ok {
		return model.Store{}, false
	}
	return *s, true
}

func (m *Memory) slugTaken(candidate string) bool {
	for _, s := range m.stores {
		if s.Slug == candidate {
			return true
		}
	}
	return false
}

func (m *Memory) whatsAppTaken(whatsapp string, except uuid.UUID) bool {
	for _, s := range m.stores {
		if s.WhatsApp == whatsapp && s.ID != except {
			return true
		}
	}
	return false
}

type storeRepo struct{ m *Memory }

func (r storeRepo) find(match func(*model.Store) bool) (*model.Store, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.stores {
		if match(s) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r storeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Store, error) {
	return r.find(func(s *model.Store) bool { return s.ID == id })
}

func (r storeRepo) FindBySlug(_ context.Context, value string) (*model.Store, error) {
	return r.find(func(s *model.Store) bool { return s.Slug == value })
}

func (r storeRepo) FindByWhatsApp(_ context.Context, whatsapp string) (*model.Store, error) {
	return r.find(func(s *model.Store) bool { return s.WhatsApp == whatsapp })
}

func (r storeRepo) sorted() []model.Store {
	out := make([]model.Store, 0, len(r.m.stores))
	for _, s := range r.m.stores {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r storeRepo) ListDirectory(_ context.Context) ([]model.StoreSummary, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []model.StoreSummary{}
	for _, s := range r.sorted() {
		if s.IsSuspended {
			continue
		}
		out = append(out, model.StoreSummary{
			ID: s.ID, Name: s.Name, LogoURL: s.LogoURL, Description: s.Description, WhatsApp: s.WhatsApp,
		})
	}
	return out, nil
}

func (r storeRepo) ListAll(_ context.Context) ([]model.Store, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.sorted(), nil
}

func (r storeRepo) Count(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.stores)), nil
}

func (r storeRepo) mutate(id uuid.UUID, fn func(*model.Store) error) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.stores[id]
	if !ok {
		return repository.ErrNotFound
	}
	return fn(s)
}

func (r storeRepo) IncrementClicks(_ context.Context, id uuid.UUID) error {
	err := r.mutate(id, func(s *model.Store) error {
		s.WhatsAppClicks++
		return nil
	})
	if err == repository.ErrNotFound {
		// an UPDATE matching no row is not an error
		return nil
	}
	return err
}

func (r storeRepo) UpdateSettings(_ context.Context, id uuid.UUID, settings model.StoreSettings) (*model.Store, error) {
	var updated model.Store
	err := r.mutate(id, func(s *model.Store) error {
		if r.m.whatsAppTaken(settings.WhatsApp, id) {
			return repository.ErrWhatsAppInUse
		}
		if settings.ProvinceID != nil {
			if _, ok := r.m.provinces[*settings.ProvinceID]; !ok {
				return repository.ErrUnknownRef
			}
		}
		s.Name = settings.Name
		s.Description = settings.Description
		s.LogoURL = settings.LogoURL
		s.WhatsApp = settings.WhatsApp
		s.IsPublicMarket = settings.IsPublicMarket
		s.ProvinceID = settings.ProvinceID
		updated = *s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r storeRepo) SetSuspended(_ context.Context, id uuid.UUID, suspended bool) error {
	return r.mutate(id, func(s *model.Store) error {
		s.IsSuspended = suspended
		return nil
	})
}

func (r storeRepo) ToggleSuspended(_ context.Context, id uuid.UUID) (bool, error) {
	var now bool
	err := r.mutate(id, func(s *model.Store) error {
		s.IsSuspended = !s.IsSuspended
		now = s.IsSuspended
		return nil
	})
	return now, err
}

func (r storeRepo) SetWhatsApp(_ context.Context, id uuid.UUID, whatsapp string) error {
	return r.mutate(id, func(s *model.Store) error {
		if r.m.whatsAppTaken(whatsapp, id) {
			return repository.ErrWhatsAppInUse
		}
		s.WhatsApp = whatsapp
		return nil
	})
}

func (r storeRepo) SetPasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	return r.mutate(id, func(s *model.Store) error {
		s.PasswordHash = hash
		return nil
	})
}

func (r storeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.stores[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.stores, id)
	for pid, p := range r.m.products {
		if p.StoreID == id {
			delete(r.m.products, pid)
		}
	}
	return nil
}

type productRepo struct{ m *Memory }

func (r productRepo) Create(_ context.Context, product *model.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.stores[product.StoreID]; !ok {
		return repository.ErrUnknownRef
	}
	r.m.nextProductID++
	product.ID = r.m.nextProductID
	product.CreatedAt = r.m.tick()
	if product.Images == nil {
		product.Images = pq.StringArray{}
	}
	cp := *product
	r.m.products[cp.ID] = &cp
	return nil
}

func (r productRepo) ListByStore(_ context.Context, storeID uuid.UUID, visibleOnly bool) ([]model.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []model.Product{}
	for _, p := range r.m.products {
		if p.StoreID != storeID || (visibleOnly && !p.IsVisible) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r productRepo) UpdateOwned(_ context.Context, id uint, storeID uuid.UUID, patch model.ProductPatch) (*model.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.products[id]
	if !ok || p.StoreID != storeID {
		return nil, repository.ErrNotOwned
	}
	patch.Apply(p)
	cp := *p
	return &cp, nil
}

func (r productRepo) DeleteOwned(_ context.Context, id uint, storeID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.products[id]
	if !ok || p.StoreID != storeID {
		return repository.ErrNotOwned
	}
	delete(r.m.products, id)
	return nil
}

func (r productRepo) Count(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.products)), nil
}

type catalogRepo struct{ m *Memory }

func (r catalogRepo) list(provinceID *uint) []model.CatalogEntry {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []model.CatalogEntry{}
	for _, p := range r.m.products {
		s, ok := r.m.stores[p.StoreID]
		if !ok || !s.IsPublicMarket || s.IsSuspended || !p.IsVisible {
			continue
		}
		var provinceName *string
		if s.ProvinceID != nil {
			if prov, ok := r.m.provinces[*s.ProvinceID]; ok {
				name := prov.Name
				provinceName = &name
			}
		}
		if provinceID != nil && (s.ProvinceID == nil || *s.ProvinceID != *provinceID || provinceName == nil) {
			continue
		}
		out = append(out, model.CatalogEntry{
			ID: p.ID, Name: p.Name, PriceCUP: p.PriceCUP, PriceUSD: p.PriceUSD, Images: p.Images,
			StoreName: s.Name, StoreWhatsApp: s.WhatsApp, StoreSlug: s.Slug, StoreProvince: provinceName,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r catalogRepo) ListPublic(_ context.Context) ([]model.CatalogEntry, error) {
	return r.list(nil), nil
}

func (r catalogRepo) ListPublicByProvince(_ context.Context, provinceID uint) ([]model.CatalogEntry, error) {
	return r.list(&provinceID), nil
}

func (r catalogRepo) ListProvinces(_ context.Context) ([]model.Province, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []model.Province{}
	for _, p := range r.m.provinces {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r catalogRepo) SeedProvinces(_ context.Context, names []string) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	existing := map[string]bool{}
	for _, p := range r.m.provinces {
		existing[p.Name] = true
	}
	added := 0
	for _, name := range names {
		if existing[name] {
			continue
		}
		r.m.nextProvinceID++
		r.m.provinces[r.m.nextProvinceID] = &model.Province{ID: r.m.nextProvinceID, Name: name}
		existing[name] = true
		added++
	}
	return added, nil
}

type licenseRepo struct{ m *Memory }

func (r licenseRepo) Create(_ context.Context, code *model.ActivationCode) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.codes {
		if c.Code == code.Code {
			return repository.ErrCodeExists
		}
	}
	r.m.nextCodeID++
	code.ID = r.m.nextCodeID
	code.CreatedAt = r.m.tick()
	cp := *code
	r.m.codes[cp.ID] = &cp
	return nil
}

func (r licenseRepo) Delete(_ context.Context, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.codes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.codes, id)
	return nil
}

func (r licenseRepo) List(_ context.Context) ([]model.ActivationCode, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []model.ActivationCode{}
	for _, c := range r.m.codes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r licenseRepo) Count(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.codes)), nil
}

type settingsRepo struct{ m *Memory }

func (r settingsRepo) Load(_ context.Context) (*model.PlatformSettings, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return &model.PlatformSettings{
		SuperAdminHash:  r.m.settings[model.SettingSuperAdminHash],
		SupportWhatsApp: r.m.settings[model.SettingSupportWhatsApp],
	}, nil
}

func (r settingsRepo) EnsureDefaults(_ context.Context, defaults model.PlatformSettings) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.settings[model.SettingSuperAdminHash]; !ok {
		r.m.settings[model.SettingSuperAdminHash] = defaults.SuperAdminHash
	}
	if _, ok := r.m.settings[model.SettingSupportWhatsApp]; !ok {
		r.m.settings[model.SettingSupportWhatsApp] = defaults.SupportWhatsApp
	}
	return nil
}

func (r settingsRepo) SetSuperAdminHash(_ context.Context, hash string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.settings[model.SettingSuperAdminHash] = hash
	return nil
}

func (r settingsRepo) SetSupportWhatsApp(_ context.Context, whatsapp string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.settings[model.SettingSupportWhatsApp] = whatsapp
	return nil
}

type registrationRepo struct{ m *Memory }

// Register holds the lock for the whole redemption, standing in for the transaction
func (r registrationRepo) Register(_ context.Context, in repository.RegistrationInput) (*model.Store, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	var code *model.ActivationCode
	for _, c := range r.m.codes {
		if c.Code == in.Code {
			code = c
			break
		}
	}
	if code == nil {
		return nil, repository.ErrInvalidCode
	}
	if r.m.whatsAppTaken(in.WhatsApp, uuid.Nil) {
		return nil, repository.ErrWhatsAppInUse
	}

	base := slug.Make(in.Name)
	candidate := base
	for attempt := 0; r.m.slugTaken(candidate); attempt++ {
		if attempt >= 8 {
			return nil, repository.ErrSlugExhausted
		}
		candidate = slug.WithSuffix(base, r.m.Suffix())
	}

	store := &model.Store{
		ID:           uuid.New(),
		Name:         in.Name,
		Slug:         candidate,
		WhatsApp:     in.WhatsApp,
		OwnerName:    in.OwnerName,
		PasswordHash: in.PasswordHash,
		CreatedAt:    r.m.tick(),
	}
	r.m.stores[store.ID] = store
	delete(r.m.codes, code.ID)

	cp := *store
	return &cp, nil
}
