package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/event"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/persistence"
)

// Entry is one profile as listed on the selection screen
type Entry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Pin    string `json:"pin"`
}

type listDocument struct {
	List []Entry `json:"list"`
}

// CreateRequest carries the onboarding answers of a new profile
type CreateRequest struct {
	Name        string        `json:"name" validate:"required,max=40"`
	Pin         string        `json:"pin" validate:"required"`
	Age         int           `json:"age" validate:"gte=0,lte=120"`
	Gender      domain.Gender `json:"gender"`
	Avatar      string        `json:"avatar"`
	CustomSport string        `json:"customSport" validate:"max=40"`
}

// Documents writes and removes per-profile progress documents
type Documents interface {
	Seed(ctx context.Context, id string, doc domain.Document) error
	Delete(ctx context.Context, id string) error
}

// Presets supplies the starter quests for an age
type Presets interface {
	QuestsForAge(age int) []domain.Quest
}

// Service manages the profile directory
type Service interface {
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	Create(ctx context.Context, req CreateRequest) (Entry, error)
	VerifyPin(ctx context.Context, id, pin string) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	store    persistence.DocumentStore
	docs     Documents
	presets  Presets
	bus      event.Bus
	validate *validator.Validate

	// serializes read-modify-write of the directory document
	mu sync.Mutex
}

// NewService creates a directory service. bus may be nil.
func NewService(store persistence.DocumentStore, docs Documents, presets Presets, bus event.Bus) Service {
	return &service{
		store:    store,
		docs:     docs,
		presets:  presets,
		bus:      bus,
		validate: validator.New(),
	}
}

func (s *service) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

func (s *service) Get(ctx context.Context, id string) (Entry, error) {
	list, err := s.List(ctx)
	if err != nil {
		return Entry{}, err
	}
	if i := indexOf(list, id); i >= 0 {
		return list[i], nil
	}
	return Entry{}, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Entry, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := domain.ValidatePin(req.Pin); err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:     uuid.NewString(),
		Name:   req.Name,
		Avatar: req.Avatar,
		Pin:    req.Pin,
	}
	if err := s.write(ctx, append(list, entry)); err != nil {
		return Entry{}, err
	}

	doc := domain.DefaultDocument()
	doc.Profile = domain.Profile{
		ID:                 entry.ID,
		Name:               req.Name,
		Pin:                req.Pin,
		Age:                req.Age,
		Gender:             domain.ParseGender(string(req.Gender)),
		Avatar:             req.Avatar,
		CustomSport:        req.CustomSport,
		OnboardingComplete: true,
	}
	if s.presets != nil {
		doc.Quests = s.presets.QuestsForAge(req.Age)
	}

	if err := s.docs.Seed(ctx, entry.ID, doc); err != nil {
		// the entry is useless without a document
		if rbErr := s.write(ctx, list); rbErr != nil {
			logger.FromContext(ctx).Error(LogMsgRollbackFailed, logger.AttrKeyProfileID, entry.ID, "error", rbErr)
		}
		return Entry{}, fmt.Errorf("seed profile %s: %w", entry.ID, err)
	}

	s.publish(ctx, event.NewProfileEvent(event.ProfileCreated, entry.ID, entry.Name))
	logger.FromContext(ctx).Info(LogMsgProfileCreated, logger.AttrKeyProfileID, entry.ID)
	return entry, nil
}

func (s *service) VerifyPin(ctx context.Context, id, pin string) error {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if entry.Pin != pin {
		return domain.ErrPinMismatch
	}
	return nil
}

// Delete removes the entry first and the progress document second. When
// the document cannot be deleted the entry is put back where it was.
func (s *service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(list, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, id)
	}
	removed := list[idx]

	remaining := make([]Entry, 0, len(list)-1)
	remaining = append(remaining, list[:idx]...)
	remaining = append(remaining, list[idx+1:]...)
	if err := s.write(ctx, remaining); err != nil {
		return err
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		restored := make([]Entry, 0, len(list))
		restored = append(restored, remaining[:idx]...)
		restored = append(restored, removed)
		restored = append(restored, remaining[idx:]...)
		if rbErr := s.write(ctx, restored); rbErr != nil {
			logger.FromContext(ctx).Error(LogMsgRollbackFailed, logger.AttrKeyProfileID, id, "error", rbErr)
		}
		return fmt.Errorf("delete profile %s: %w", id, err)
	}

	s.publish(ctx, event.NewProfileEvent(event.ProfileDeleted, id, removed.Name))
	logger.FromContext(ctx).Info(LogMsgProfileDeleted, logger.AttrKeyProfileID, id)
	return nil
}

// read loads the directory. A missing directory is empty. Callers hold s.mu.
func (s *service) read(ctx context.Context) ([]Entry, error) {
	body, err := s.store.Get(ctx, persistence.CollectionMeta, persistence.DirectoryID)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile directory: %w", err)
	}

	var doc listDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		logger.FromContext(ctx).Warn(LogMsgMalformedDirectory, "error", err)
		return []Entry{}, nil
	}
	if doc.List == nil {
		doc.List = []Entry{}
	}
	return doc.List, nil
}

func (s *service) write(ctx context.Context, list []Entry) error {
	body, err := json.Marshal(listDocument{List: list})
	if err != nil {
		return fmt.Errorf("encode profile directory: %w", err)
	}
	if err := s.store.Put(ctx, persistence.CollectionMeta, persistence.DirectoryID, body); err != nil {
		return fmt.Errorf("write profile directory: %w", err)
	}
	return nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func indexOf(list []Entry, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
