package dto

import "github.com/dchirkov/eventum/models"

// ToUserDto converts a user entity to its admin wire form.
func ToUserDto(u models.User) UserDto {
	return UserDto{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ToUserShortDto converts a user entity to its embedded wire form.
func ToUserShortDto(u models.User) UserShortDto {
	return UserShortDto{ID: u.ID, Name: u.Name}
}

// ToCategoryDto converts a category entity.
func ToCategoryDto(c models.Category) CategoryDto {
	return CategoryDto{ID: c.ID, Name: c.Name}
}

// ToLocationDto converts a location entity.
func ToLocationDto(l models.Location) LocationDto {
	return LocationDto{Lat: l.Lat, Lon: l.Lon}
}

// ToEventFullDto assembles the full event payload from the entity and its
// explicitly resolved relations plus derived counts.
func ToEventFullDto(e models.Event, cat models.Category, initiator models.User, loc models.Location, confirmed, views int64) EventFullDto {
	out := EventFullDto{
		ID:                e.ID,
		Title:             e.Title,
		Annotation:        e.Annotation,
		Description:       e.Description,
		Category:          ToCategoryDto(cat),
		Initiator:         ToUserShortDto(initiator),
		CreatedOn:         DateTime(e.CreatedOn),
		EventDate:         DateTime(e.EventDate),
		Location:          ToLocationDto(loc),
		Paid:              e.Paid,
		ParticipantLimit:  e.ParticipantLimit,
		RequestModeration: e.RequestModeration,
		State:             e.State,
		ConfirmedRequests: confirmed,
		Views:             views,
	}
	if e.PublishedOn != nil {
		p := DateTime(*e.PublishedOn)
		out.PublishedOn = &p
	}
	return out
}

// ToEventShortDto assembles the condensed event payload.
func ToEventShortDto(e models.Event, cat models.Category, initiator models.User, confirmed, views int64) EventShortDto {
	return EventShortDto{
		ID:                e.ID,
		Title:             e.Title,
		Annotation:        e.Annotation,
		Category:          ToCategoryDto(cat),
		Initiator:         ToUserShortDto(initiator),
		EventDate:         DateTime(e.EventDate),
		Paid:              e.Paid,
		ConfirmedRequests: confirmed,
		Views:             views,
	}
}

// ToParticipationRequestDto converts a request entity.
func ToParticipationRequestDto(r models.ParticipationRequest) ParticipationRequestDto {
	return ParticipationRequestDto{
		ID:        r.ID,
		Created:   DateTime(r.Created),
		Event:     r.EventID,
		Requester: r.RequesterID,
		Status:    r.Status,
	}
}

// ToParticipationRequestDtos converts a slice of request entities preserving
// order.
func ToParticipationRequestDtos(rs []models.ParticipationRequest) []ParticipationRequestDto {
	out := make([]ParticipationRequestDto, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToParticipationRequestDto(r))
	}
	return out
}

// ToCommentDto converts a comment entity.
func ToCommentDto(c models.Comment) CommentDto {
	out := CommentDto{
		ID:        c.ID,
		Text:      c.Text,
		Event:     c.EventID,
		Author:    c.AuthorID,
		Status:    c.Status,
		CreatedOn: DateTime(c.CreatedOn),
	}
	if c.UpdatedOn != nil {
		u := DateTime(*c.UpdatedOn)
		out.UpdatedOn = &u
	}
	return out
}

// ToCommentShortDto converts a comment for public listings.
func ToCommentShortDto(c models.Comment) CommentShortDto {
	return CommentShortDto{
		ID:        c.ID,
		Text:      c.Text,
		Author:    c.AuthorID,
		CreatedOn: DateTime(c.CreatedOn),
	}
}
