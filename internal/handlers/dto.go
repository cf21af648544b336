package handlers

import "github.com/flyosprey/Store-REST-API/internal/models"

// UserResponse is the public view of a user. The password digest and
// email are never serialized.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// StoreRef is a store nested inside an item or tag.
type StoreRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemRef is an item nested inside a store or tag.
type ItemRef struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// TagRef is a tag nested inside a store or item.
type TagRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type StoreResponse struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Items []ItemRef `json:"items"`
	Tags  []TagRef  `json:"tags"`
}

type ItemResponse struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
	Store *StoreRef `json:"store"`
	Tags  []TagRef  `json:"tags"`
}

type TagResponse struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Store *StoreRef `json:"store"`
	Items []ItemRef `json:"items"`
}

// TagLinkResponse is returned when a tag is removed from an item.
type TagLinkResponse struct {
	Message string       `json:"message"`
	Item    ItemResponse `json:"item"`
	Tag     TagResponse  `json:"tag"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}

func toStoreRef(s *models.Store) *StoreRef {
	if s == nil {
		return nil
	}
	return &StoreRef{ID: s.ID, Name: s.Name}
}

func toItemRefs(items []models.Item) []ItemRef {
	refs := make([]ItemRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, ItemRef{ID: item.ID, Name: item.Name, Price: item.Price})
	}
	return refs
}

func toTagRefs(tags []models.Tag) []TagRef {
	refs := make([]TagRef, 0, len(tags))
	for _, tag := range tags {
		refs = append(refs, TagRef{ID: tag.ID, Name: tag.Name})
	}
	return refs
}

func toStoreResponse(s *models.Store) StoreResponse {
	return StoreResponse{
		ID:    s.ID,
		Name:  s.Name,
		Items: toItemRefs(s.Items),
		Tags:  toTagRefs(s.Tags),
	}
}

func toStoreResponses(stores []models.Store) []StoreResponse {
	out := make([]StoreResponse, 0, len(stores))
	for i := range stores {
		out = append(out, toStoreResponse(&stores[i]))
	}
	return out
}

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:    item.ID,
		Name:  item.Name,
		Price: item.Price,
		Store: toStoreRef(item.Store),
		Tags:  toTagRefs(item.Tags),
	}
}

func toItemResponses(items []models.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}
	return out
}

func toTagResponse(tag *models.Tag) TagResponse {
	return TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Store: toStoreRef(tag.Store),
		Items: toItemRefs(tag.Items),
	}
}

func toTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, toTagResponse(&tags[i]))
	}
	return out
}
