package models

type GameCatalogEntry struct {
	GameID      string `json:"game_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url,omitempty"`
	UpdatedAt   int64  `json:"updated_at"`
}

type GameSymbol struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	UpdatedAt int64  `json:"updated_at"`
}

// GameSymbolSet groups the display symbols an operator can swap per surface.
type GameSymbolSet struct {
	Slots []GameSymbol `json:"slots"`
	Dice  []GameSymbol `json:"dice"`
	Cards []GameSymbol `json:"cards"`
	Wheel []GameSymbol `json:"wheel"`
}

type AppAsset struct {
	AssetID       string `json:"asset_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	AssetCategory string `json:"asset_category"`
	URL           string `json:"url,omitempty"`
	UpdatedAt     int64  `json:"updated_at"`
}
