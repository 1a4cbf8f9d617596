package navigation

import (
	"net/url"
	"strconv"
	"strings"

	"fieldops/internal/domain/entities"
)

// Destination is where a job takes the crew.
type Destination struct {
	Address   string
	Latitude  *float64
	Longitude *float64
}

func DestinationFor(job entities.WorkOrder) Destination {
	return Destination{Address: strings.TrimSpace(job.Address), Latitude: job.Latitude, Longitude: job.Longitude}
}

func (d Destination) HasCoordinates() bool {
	return d.Latitude != nil && d.Longitude != nil
}

func (d Destination) Empty() bool {
	return d.Address == "" && !d.HasCoordinates()
}

// query prefers the coordinate pair, which maps resolve exactly.
func (d Destination) query() string {
	if d.HasCoordinates() {
		return coord(*d.Latitude, *d.Longitude)
	}
	return url.QueryEscape(d.Address)
}

func coord(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

// Chain returns the deep links to try for platform, in order. The generic web
// link is always last. origin may be nil.
func Chain(platform Platform, origin *Position, dest Destination) []string {
	var chain []string
	switch platform {
	case PlatformAndroid:
		if dest.HasCoordinates() {
			chain = append(chain, "google.navigation:q="+dest.query())
		} else {
			chain = append(chain, "geo:0,0?q="+dest.query())
		}
	case PlatformIOS:
		chain = append(chain,
			"maps://?"+saddr(origin)+"daddr="+dest.query()+"&dirflg=d",
			"comgooglemaps://?"+saddr(origin)+"daddr="+dest.query()+"&directionsmode=driving",
		)
	}
	return append(chain, WebLink(origin, dest))
}

// WebLink is a Google Maps route when origin is known, a destination search
// otherwise.
func WebLink(origin *Position, dest Destination) string {
	if origin == nil {
		return "https://www.google.com/maps/search/?api=1&query=" + dest.query()
	}
	return "https://www.google.com/maps/dir/?api=1&origin=" + coord(origin.Latitude, origin.Longitude) +
		"&destination=" + dest.query() + "&travelmode=driving"
}

func saddr(origin *Position) string {
	if origin == nil {
		return ""
	}
	return "saddr=" + coord(origin.Latitude, origin.Longitude) + "&"
}
