package models

// CasinoSettings are admin-tunable bounds read by the games only to bound
// UI inputs, never to alter outcome math.
type CasinoSettings struct {
	MinDeposit          int64  `json:"min_deposit"`
	MinWithdrawal       int64  `json:"min_withdrawal"`
	HouseEdgePercentage int64  `json:"house_edge_percentage"`
	CurrencyName        string `json:"currency_name"`
	DealerUsername      string `json:"dealer_username"`
}

type SiteBranding struct {
	DisplayName string `json:"display_name"`
}

type ThemeConfig struct {
	PrimaryColor       string `json:"primary_color"`
	AccentColor        string `json:"accent_color"`
	BgGradient         string `json:"bg_gradient"`
	CardGradient       string `json:"card_gradient"`
	SurfaceGradient    string `json:"surface_gradient"`
	NavigationGradient string `json:"navigation_gradient"`
}

type BannerConfig struct {
	Enabled         bool   `json:"enabled"`
	BannerImageURL  string `json:"banner_image_url,omitempty"`
	DestinationURL  string `json:"destination_url"`
	BackgroundColor string `json:"background_color"`
	ObjectFit       string `json:"object_fit"`
	Height          int64  `json:"height"`
	Padding         int64  `json:"padding"`
	UpdatedAt       int64  `json:"updated_at"`
}
