package geocoder

type geocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject geoObject `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

type geoObject struct {
	MetaDataProperty struct {
		GeocoderMetaData Metadata `json:"GeocoderMetaData"`
	} `json:"metaDataProperty"`
	Point struct {
		Pos string `json:"pos"`
	} `json:"Point"`
}

// Metadata is the structured description of one geocoded place.
type Metadata struct {
	Text    string `json:"text"`
	Kind    string `json:"kind"`
	Address struct {
		Formatted  string      `json:"formatted"`
		Components []Component `json:"Components"`
	} `json:"Address"`
}

// Component is one level of a geocoded address, e.g. {kind: locality, name: Уфа}.
type Component struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// Point is a WGS84 position.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ReverseResult describes the address found at a position.
type ReverseResult struct {
	FormattedAddress string      `json:"formatted_address"`
	FullAddress      string      `json:"full_address"`
	Components       []Component `json:"components"`
}
