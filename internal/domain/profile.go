package domain

import "time"

// Profile is a user's portal profile. It is created with defaults the first
// time a user is seen.
type Profile struct {
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"display_name"`
	Status        string    `json:"status"`
	Level         int       `json:"level"`
	Experience    int       `json:"experience"`
	GamesPlayed   int       `json:"games_played"`
	TotalPlaytime int       `json:"total_playtime"` // minutes
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultStatus is the status line new profiles start with.
const DefaultStatus = "Ready to surge!"

// Settings holds a user's portal preferences, upserted as a whole record.
type Settings struct {
	UserID string `json:"user_id"`

	// Notifications
	PushEnabled        bool `json:"push_enabled"`
	NewGames           bool `json:"new_games"`
	Achievements       bool `json:"achievements"`
	DailyChallenges    bool `json:"daily_challenges"`
	EmailNotifications bool `json:"email_notifications"`
	WeeklyDigest       bool `json:"weekly_digest"`
	Promotions         bool `json:"promotions"`

	// Privacy
	ProfilePublic       bool `json:"profile_public"`
	ShowOnlineStatus    bool `json:"show_online_status"`
	AllowFriendRequests bool `json:"allow_friend_requests"`

	// Gameplay
	AutoSave        bool   `json:"auto_save"`
	SoundEnabled    bool   `json:"sound_enabled"`
	MusicEnabled    bool   `json:"music_enabled"`
	GraphicsQuality string `json:"graphics_quality"`

	// Appearance
	Theme       string `json:"theme"`
	ColorScheme string `json:"color_scheme"`
}

// DefaultSettings returns the settings a new user starts with.
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:              userID,
		PushEnabled:         true,
		NewGames:            true,
		Achievements:        true,
		DailyChallenges:     true,
		EmailNotifications:  true,
		Promotions:          true,
		ProfilePublic:       true,
		ShowOnlineStatus:    true,
		AllowFriendRequests: true,
		AutoSave:            true,
		SoundEnabled:        true,
		MusicEnabled:        true,
		GraphicsQuality:     "medium",
		Theme:               "light",
		ColorScheme:         "default",
	}
}
