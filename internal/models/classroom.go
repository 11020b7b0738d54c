package models

import "time"

// Classroom is the matched entity. Interests and availability are stored as
// JSON columns via the GORM serializer, mirroring the array columns the
// service has always used.
type Classroom struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	AccountID uint   `json:"account_id" gorm:"index;not null"`
	Name      string `json:"name" gorm:"size:100;not null"`
	Location  string `json:"location,omitempty" gorm:"size:100"`
	// Coordinates are kept as strings; the frontend geocoder supplies them
	// and nothing server-side does arithmetic on them.
	Latitude     string           `json:"latitude,omitempty" gorm:"size:30"`
	Longitude    string           `json:"longitude,omitempty" gorm:"size:30"`
	ClassSize    *int             `json:"class_size,omitempty"`
	Timezone     string           `json:"timezone,omitempty" gorm:"size:50"`
	Availability map[string][]int `json:"availability,omitempty" gorm:"serializer:json"`
	Interests    []string         `json:"interests" gorm:"serializer:json"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type CreateClassroomRequest struct {
	Name         string           `json:"name" validate:"required,max=100"`
	Location     string           `json:"location,omitempty" validate:"omitempty,max=100"`
	Latitude     string           `json:"latitude,omitempty"`
	Longitude    string           `json:"longitude,omitempty"`
	ClassSize    *int             `json:"class_size,omitempty" validate:"omitempty,min=1,max=100"`
	Timezone     string           `json:"timezone,omitempty" validate:"omitempty,max=50"`
	Availability map[string][]int `json:"availability,omitempty"`
	Interests    []string         `json:"interests,omitempty"`
}

// UpdateClassroomRequest uses pointers so absent fields are left untouched.
type UpdateClassroomRequest struct {
	Name         *string           `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Location     *string           `json:"location,omitempty" validate:"omitempty,max=100"`
	Latitude     *string           `json:"latitude,omitempty"`
	Longitude    *string           `json:"longitude,omitempty"`
	ClassSize    *int              `json:"class_size,omitempty" validate:"omitempty,min=1,max=100"`
	Timezone     *string           `json:"timezone,omitempty" validate:"omitempty,max=50"`
	Availability *map[string][]int `json:"availability,omitempty"`
	Interests    *[]string         `json:"interests,omitempty"`
}
