package radarr

import "encoding/json"

// Movie is a lookup result. The typed fields are what matching needs; Extra
// carries the full lookup payload so an add forwards everything Radarr
// returned, unmodified.
type Movie struct {
	TMDBID int64          `json:"tmdbId"`
	Title  string         `json:"title"`
	Year   int            `json:"year"`
	Extra  map[string]any `json:"-"`
}

// UnmarshalJSON decodes the typed fields and keeps the complete payload.
func (m *Movie) UnmarshalJSON(data []byte) error {
	type plain Movie
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var extra map[string]any
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}
	*m = Movie(p)
	m.Extra = extra
	return nil
}

// addPayload builds the add-request body: the verbatim lookup payload with
// the destination parameters overlaid.
func (m Movie) addPayload(opts AddOptions) map[string]any {
	payload := make(map[string]any, len(m.Extra)+4)
	for k, v := range m.Extra {
		payload[k] = v
	}
	if m.Extra == nil {
		payload["tmdbId"] = m.TMDBID
		payload["title"] = m.Title
		payload["year"] = m.Year
	}
	payload["rootFolderPath"] = opts.RootFolder
	payload["qualityProfileId"] = opts.QualityProfileID
	payload["monitored"] = opts.Monitored
	payload["addOptions"] = map[string]any{"searchForMovie": opts.SearchOnAdd}
	return payload
}

// AddOptions are the destination parameters for an add.
type AddOptions struct {
	RootFolder       string
	QualityProfileID int64
	Monitored        bool
	SearchOnAdd      bool
}

// SystemStatus is the preflight response.
type SystemStatus struct {
	Version string `json:"version"`
	OSName  string `json:"osName"`
}

// RootFolder is a configured library destination.
type RootFolder struct {
	Path      string `json:"path"`
	FreeSpace int64  `json:"freeSpace"`
}

// QualityProfile is a configured quality profile.
type QualityProfile struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// libraryMovie is the subset of a library entry used for duplicate seeding.
type libraryMovie struct {
	TMDBID int64 `json:"tmdbId"`
}
