package profileform

import (
	"myapp_backend/internal/profile"
)

// Section is one tab of the profile editor.
type Section string

const (
	SectionBasic       Section = "Basic"
	SectionAdditional  Section = "Additional"
	SectionSpouse      Section = "Spouse"
	SectionPreferences Section = "Preferences"
)

// MaritalStatusMarried is the only status that shows the Spouse section.
const MaritalStatusMarried = "Married"

var sectionFields = map[Section][]string{
	SectionBasic: {
		profile.FieldAvatar,
		profile.FieldSalutation,
		profile.FieldFirstName,
		profile.FieldLastName,
		profile.FieldEmail,
	},
	SectionAdditional: {
		profile.FieldHomeAddress,
		profile.FieldCountry,
		profile.FieldPostalCode,
		profile.FieldDOB,
		profile.FieldGender,
		profile.FieldMaritalStatus,
	},
	SectionSpouse: {
		profile.FieldSpouseSalutation,
		profile.FieldSpouseFirstName,
		profile.FieldSpouseLastName,
	},
	SectionPreferences: {
		profile.FieldHobbies,
		profile.FieldSports,
		profile.FieldMusic,
		profile.FieldMovies,
	},
}

// VisibleSections lists the tabs in display order for maritalStatus.
func VisibleSections(maritalStatus string) []Section {
	if maritalStatus == MaritalStatusMarried {
		return []Section{SectionBasic, SectionAdditional, SectionSpouse, SectionPreferences}
	}
	return []Section{SectionBasic, SectionAdditional, SectionPreferences}
}

// SectionFor returns the section rendered at tab index. Index 2 depends on
// maritalStatus; index 3 is always Preferences.
func SectionFor(tab int, maritalStatus string) (Section, bool) {
	switch tab {
	case 0:
		return SectionBasic, true
	case 1:
		return SectionAdditional, true
	case 2:
		if maritalStatus == MaritalStatusMarried {
			return SectionSpouse, true
		}
		return SectionPreferences, true
	case 3:
		return SectionPreferences, true
	default:
		return "", false
	}
}

// Fields returns the profile fields a section edits, nil for an unknown section.
func Fields(s Section) []string {
	fields, ok := sectionFields[s]
	if !ok {
		return nil
	}
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}
