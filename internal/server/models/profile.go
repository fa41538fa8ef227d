package models

// Styling enumerations. Values outside these sets are rejected on update.
const (
	BackgroundEffectNone      = "none"
	BackgroundEffectParticles = "particles"
	BackgroundEffectRain      = "rain"
	BackgroundEffectSnow      = "snow"

	FontFamilySans  = "sans"
	FontFamilySerif = "serif"
	FontFamilyMono  = "mono"
)

// Profile holds the visual customization of a user's page. Exactly one row
// exists per user; every column has a database default so a lazily
// materialized row is fully usable.
type Profile struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"userId"`
	DisplayName      string `json:"displayName"`
	Bio              string `json:"bio"`
	Location         string `json:"location"`
	AvatarPath       string `json:"avatarPath"`
	BannerPath       string `json:"bannerPath"`
	BackgroundPath   string `json:"backgroundPath"`
	MusicPath        string `json:"musicPath"`
	ThemeColor       string `json:"themeColor"`
	BackgroundEffect string `json:"backgroundEffect"`
	FontFamily       string `json:"fontFamily"`
	ShowViews        bool   `json:"showViews"`
	ShowUID          bool   `json:"showUid"`
	ShowJoinDate     bool   `json:"showJoinDate"`
	ShowWatermark    bool   `json:"showWatermark"`
	RevealEnabled    bool   `json:"revealEnabled"`
	RevealText       string `json:"revealText"`
}
