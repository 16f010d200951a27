package models

type GroupType string

const (
	GroupPublic    GroupType = "public"
	GroupProtected GroupType = "protected"
	GroupPrivate   GroupType = "private"
)

type GroupUserRole string

const (
	RoleAdmin  GroupUserRole = "admin"
	RoleMember GroupUserRole = "member"
)

type PlaceType string

const (
	PlaceRestaurant PlaceType = "restaurant"
	PlaceBar        PlaceType = "bar"
	PlaceCafe       PlaceType = "cafe"
	PlacePark       PlaceType = "park"
)

// SelfFilter narrows ListGroups to groups the caller created or joined.
// The empty filter lists public groups.
type SelfFilter string

const (
	SelfAny     SelfFilter = ""
	SelfCreator SelfFilter = "creator"
	SelfMember  SelfFilter = "member"
)

type CreateGroupRequest struct {
	Name   string    `json:"name" validate:"required"`
	Radius int       `json:"radius,omitempty" validate:"gte=0"`
	Secret string    `json:"secret,omitempty"`
	Type   GroupType `json:"type,omitempty" validate:"omitempty,oneof=public protected private"`
}

type UpdateGroupRequest struct {
	Name   string    `json:"name,omitempty"`
	Radius int       `json:"radius,omitempty" validate:"gte=0"`
	Secret string    `json:"secret,omitempty"`
	Type   GroupType `json:"type,omitempty" validate:"omitempty,oneof=public protected private"`
}

type GroupUserJoinRequest struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type GroupCreator struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type GroupPlaceResponse struct {
	Address   string    `json:"address"`
	GroupID   string    `json:"group_id"`
	ID        string    `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	MapURI    string    `json:"map_uri"`
	Name      string    `json:"name"`
	PlaceID   string    `json:"place_id"`
	Rating    float64   `json:"rating"`
	Type      PlaceType `json:"type"`
}

type GroupUserResponse struct {
	GroupID   string        `json:"group_id"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Role      GroupUserRole `json:"role"`
	UserID    int64         `json:"user_id"`
}

type GroupResponse struct {
	Code              string               `json:"code"`
	Creator           GroupCreator         `json:"creator"`
	ID                string               `json:"id"`
	Members           []GroupUserResponse  `json:"members"`
	MidpointLatitude  float64              `json:"midpoint_latitude"`
	MidpointLongitude float64              `json:"midpoint_longitude"`
	Name              string               `json:"name"`
	Places            []GroupPlaceResponse `json:"places"`
	Radius            int                  `json:"radius"`
	Type              GroupType            `json:"type"`
}
