package profile

import (
	"time"
)

// Profile is the stored profile document, one per userId.
type Profile struct {
	UserID           string     `json:"userId" bson:"userId"`
	Salutation       string     `json:"salutation,omitempty" bson:"salutation,omitempty"`
	FirstName        string     `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName         string     `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Email            string     `json:"email,omitempty" bson:"email,omitempty"`
	HomeAddress      string     `json:"homeAddress,omitempty" bson:"homeAddress,omitempty"`
	Country          string     `json:"country,omitempty" bson:"country,omitempty"`
	PostalCode       string     `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
	DOB              *time.Time `json:"dob" bson:"dob"`
	Gender           string     `json:"gender,omitempty" bson:"gender,omitempty"`
	MaritalStatus    string     `json:"maritalStatus,omitempty" bson:"maritalStatus,omitempty"`
	SpouseSalutation string     `json:"spouseSalutation,omitempty" bson:"spouseSalutation,omitempty"`
	SpouseFirstName  string     `json:"spouseFirstName,omitempty" bson:"spouseFirstName,omitempty"`
	SpouseLastName   string     `json:"spouseLastName,omitempty" bson:"spouseLastName,omitempty"`
	Hobbies          string     `json:"hobbies,omitempty" bson:"hobbies,omitempty"`
	Sports           string     `json:"sports,omitempty" bson:"sports,omitempty"`
	Music            string     `json:"music,omitempty" bson:"music,omitempty"`
	Movies           string     `json:"movies,omitempty" bson:"movies,omitempty"`
	Avatar           string     `json:"avatar,omitempty" bson:"avatar,omitempty"`
	UpdatedAt        time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// Field names a save may set, as they appear in the form and the document.
const (
	FieldSalutation       = "salutation"
	FieldFirstName        = "firstName"
	FieldLastName         = "lastName"
	FieldEmail            = "email"
	FieldHomeAddress      = "homeAddress"
	FieldCountry          = "country"
	FieldPostalCode       = "postalCode"
	FieldDOB              = "dob"
	FieldGender           = "gender"
	FieldMaritalStatus    = "maritalStatus"
	FieldSpouseSalutation = "spouseSalutation"
	FieldSpouseFirstName  = "spouseFirstName"
	FieldSpouseLastName   = "spouseLastName"
	FieldHobbies          = "hobbies"
	FieldSports           = "sports"
	FieldMusic            = "music"
	FieldMovies           = "movies"
	FieldAvatar           = "avatar"
)

// textFields maps each plain text form field to its SQL column.
// dob, avatar and userId are handled separately.
var textFields = map[string]string{
	FieldSalutation:       "salutation",
	FieldFirstName:        "first_name",
	FieldLastName:         "last_name",
	FieldEmail:            "email",
	FieldHomeAddress:      "home_address",
	FieldCountry:          "country",
	FieldPostalCode:       "postal_code",
	FieldGender:           "gender",
	FieldMaritalStatus:    "marital_status",
	FieldSpouseSalutation: "spouse_salutation",
	FieldSpouseFirstName:  "spouse_first_name",
	FieldSpouseLastName:   "spouse_last_name",
	FieldHobbies:          "hobbies",
	FieldSports:           "sports",
	FieldMusic:            "music",
	FieldMovies:           "movies",
}

// IsTextField reports whether name is a known plain text profile field.
func IsTextField(name string) bool {
	_, ok := textFields[name]
	return ok
}

// Update is a merge into the profile of UserID: only what it carries is written.
type Update struct {
	UserID string
	// Fields holds submitted text fields keyed by form name. A present key
	// with an empty value clears the stored value.
	Fields map[string]string
	// SetDOB is true when dob was submitted; DOB is nil when it did not parse.
	SetDOB bool
	DOB    *time.Time
	// Avatar is the public path of a newly stored avatar, or "" to keep the current one.
	Avatar    string
	UpdatedAt time.Time
}

// profileRecord is the GORM row for a Profile.
type profileRecord struct {
	ID               uint       `gorm:"primaryKey"`
	UserID           string     `gorm:"column:user_id;type:varchar(255);uniqueIndex;not null"`
	Salutation       string     `gorm:"column:salutation;type:varchar(16)"`
	FirstName        string     `gorm:"column:first_name;type:varchar(255)"`
	LastName         string     `gorm:"column:last_name;type:varchar(255)"`
	Email            string     `gorm:"column:email;type:varchar(255)"`
	HomeAddress      string     `gorm:"column:home_address;type:text"`
	Country          string     `gorm:"column:country;type:varchar(255)"`
	PostalCode       string     `gorm:"column:postal_code;type:varchar(32)"`
	DOB              *time.Time `gorm:"column:dob"`
	Gender           string     `gorm:"column:gender;type:varchar(32)"`
	MaritalStatus    string     `gorm:"column:marital_status;type:varchar(32)"`
	SpouseSalutation string     `gorm:"column:spouse_salutation;type:varchar(16)"`
	SpouseFirstName  string     `gorm:"column:spouse_first_name;type:varchar(255)"`
	SpouseLastName   string     `gorm:"column:spouse_last_name;type:varchar(255)"`
	Hobbies          string     `gorm:"column:hobbies;type:text"`
	Sports           string     `gorm:"column:sports;type:text"`
	Music            string     `gorm:"column:music;type:text"`
	Movies           string     `gorm:"column:movies;type:text"`
	Avatar           string     `gorm:"column:avatar;type:varchar(512)"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (profileRecord) TableName() string {
	return "profiles"
}

func (r *profileRecord) toProfile() *Profile {
	return &Profile{
		UserID:           r.UserID,
		Salutation:       r.Salutation,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		HomeAddress:      r.HomeAddress,
		Country:          r.Country,
		PostalCode:       r.PostalCode,
		DOB:              r.DOB,
		Gender:           r.Gender,
		MaritalStatus:    r.MaritalStatus,
		SpouseSalutation: r.SpouseSalutation,
		SpouseFirstName:  r.SpouseFirstName,
		SpouseLastName:   r.SpouseLastName,
		Hobbies:          r.Hobbies,
		Sports:           r.Sports,
		Music:            r.Music,
		Movies:           r.Movies,
		Avatar:           r.Avatar,
		UpdatedAt:        r.UpdatedAt,
	}
}
