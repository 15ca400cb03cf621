package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateRoundID() string {
	return fmt.Sprintf("round_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateSessionID() string {
	return uuid.New().String()
}

func GenerateAssetID() string {
	return "asset_" + uuid.New().String()
}

func FormatCurrency(amount int64, currencyName string) string {
	if currencyName == "" {
		currencyName = "diamonds"
	}
	return fmt.Sprintf("%d %s", amount, currencyName)
}
