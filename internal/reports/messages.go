package reports

import (
	"fmt"

	"pulseboard/internal/models"
)

// CryptoErrorMessage is shown for every failed crypto fetch, empty results included
const CryptoErrorMessage = "Error fetching data from the API"

// NoQuakesMessage is shown when the seismic query matched nothing
const NoQuakesMessage = "No earthquakes found in the selected range."

// CryptoBanner returns the status line for a crypto result
func CryptoBanner(res models.PriceResult) Banner {
	if !res.OK() {
		return Banner{Level: BannerError, Text: CryptoErrorMessage}
	}
	return Banner{}
}

// SeismicBanner returns the status line for a seismic result
func SeismicBanner(res models.QuakeResult) Banner {
	switch {
	case res.Err.IsEmpty():
		return Banner{Level: BannerWarning, Text: NoQuakesMessage}
	case res.Err != nil:
		return Banner{Level: BannerError, Text: "Error fetching data: " + res.Err.Message}
	default:
		return Banner{Level: BannerSuccess, Text: fmt.Sprintf("Found %d earthquakes.", len(res.Table))}
	}
}
