package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/eventum/eventum/database"
	"github.com/eventum/eventum/database/model"
	"github.com/eventum/eventum/logger"

	"github.com/gosimple/slug"
)

var ErrEventNotFound = errors.New("event not found")

// EventInput carries the editable fields of an event. Nil fields are left unchanged on update.
type EventInput struct {
	Title       *string    `json:"title"`
	Slug        *string    `json:"slug"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartsAt    *time.Time `json:"startsAt"`
}

type EventService struct{}

// ListEvents returns events ordered by start time. Drafts are only included when includeDrafts is set.
func (s *EventService) ListEvents(includeDrafts bool) ([]model.Event, error) {
	var events []model.Event
	q := database.GetDB().Order("starts_at ASC, id ASC")
	if !includeDrafts {
		q = q.Where("published = ?", true)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventService) GetById(id int) (*model.Event, error) {
	event := &model.Event{}
	err := database.GetDB().First(event, id).Error
	if database.IsNotFound(err) {
		return nil, ErrEventNotFound
	} else if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) CreateEvent(creatorId int, in EventInput) (*model.Event, error) {
	if in.Title == nil || *in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	event := &model.Event{CreatorId: creatorId}
	applyEventInput(event, in)
	if event.Slug == "" {
		event.Slug = slug.Make(event.Title)
	}
	if event.Slug == "" {
		return nil, fmt.Errorf("%w: title must contain letters or digits", ErrInvalidInput)
	}
	if err := database.GetDB().Create(event).Error; err != nil {
		return nil, err
	}
	logger.Infof("event %q created by user %d", event.Slug, creatorId)
	return event, nil
}

func (s *EventService) UpdateEvent(id int, in EventInput) (*model.Event, error) {
	event, err := s.GetById(id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil && *in.Title == "" {
		return nil, fmt.Errorf("%w: title can not be empty", ErrInvalidInput)
	}
	applyEventInput(event, in)
	if in.Slug != nil && event.Slug == "" {
		event.Slug = slug.Make(event.Title)
	}
	if err := database.GetDB().Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) SetPublished(id int, published bool) (*model.Event, error) {
	event, err := s.GetById(id)
	if err != nil {
		return nil, err
	}
	event.Published = published
	if err := database.GetDB().Model(event).Update("published", published).Error; err != nil {
		return nil, err
	}
	logger.Infof("event %q published=%v", event.Slug, published)
	return event, nil
}

func (s *EventService) DeleteEvent(id int) error {
	result := database.GetDB().Delete(&model.Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func applyEventInput(event *model.Event, in EventInput) {
	if in.Title != nil {
		event.Title = *in.Title
	}
	if in.Slug != nil {
		event.Slug = slug.Make(*in.Slug)
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.StartsAt != nil {
		event.StartsAt = *in.StartsAt
	}
}
