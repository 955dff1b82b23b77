package account

import "github.com/Integrum-Global/kronos/internal/domain/risk"

// User is the identity attached to an authenticated state.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Principal is the resolved caller of an authorized request.
type Principal struct {
	UserID string
	Email  string
}

type Preferences struct {
	Notifications bool   `json:"notifications"`
	DarkMode      bool   `json:"darkMode"`
	Language      string `json:"language"`
}

type Profile struct {
	FirstName       string        `json:"firstName"`
	LastName        string        `json:"lastName"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	DateOfBirth     string        `json:"dateOfBirth"`
	RiskProfile     *risk.Profile `json:"riskProfile"`
	InvestmentGoals []string      `json:"investmentGoals"`
	Preferences     Preferences   `json:"preferences"`
}

// State is the durable per-user record: exactly the fields below are
// persisted, nothing else. Mutation happens only through AccountService
// operations, each producing a new snapshot.
type State struct {
	IsAuthenticated bool           `json:"isAuthenticated"`
	User            *User          `json:"user"`
	Token           string         `json:"token"`
	Profile         Profile        `json:"profile"`
	OnboardingStep  int            `json:"onboardingStep"`
	OnboardingData  map[string]any `json:"onboardingData"`
}

// DefaultState is the single source of the empty shape. Logout resets to it
// wholesale; first use starts from it.
func DefaultState() State {
	return State{
		IsAuthenticated: false,
		User:            nil,
		Token:           "",
		Profile: Profile{
			RiskProfile:     nil,
			InvestmentGoals: []string{},
			Preferences: Preferences{
				Notifications: true,
				DarkMode:      false,
				Language:      "en",
			},
		},
		OnboardingStep: 0,
		OnboardingData: map[string]any{},
	}
}

// ProfilePatch carries the fields of a shallow profile merge. Nil fields are
// left untouched.
type ProfilePatch struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	DateOfBirth *string
}

// Apply returns a new Profile with the patch merged in.
func (p ProfilePatch) Apply(profile Profile) Profile {
	if p.FirstName != nil {
		profile.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		profile.LastName = *p.LastName
	}
	if p.Email != nil {
		profile.Email = *p.Email
	}
	if p.Phone != nil {
		profile.Phone = *p.Phone
	}
	if p.DateOfBirth != nil {
		profile.DateOfBirth = *p.DateOfBirth
	}
	return profile
}

// PreferencesPatch carries the fields of a nested preferences merge.
type PreferencesPatch struct {
	Notifications *bool
	DarkMode      *bool
	Language      *string
}

func (p PreferencesPatch) Apply(prefs Preferences) Preferences {
	if p.Notifications != nil {
		prefs.Notifications = *p.Notifications
	}
	if p.DarkMode != nil {
		prefs.DarkMode = *p.DarkMode
	}
	if p.Language != nil {
		prefs.Language = *p.Language
	}
	return prefs
}
