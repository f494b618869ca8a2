package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"campusair-server/internal/modules/air/types"
)

func parseReadingsQuery(r *http.Request) (station types.Station, limit int, err error) {
	q := r.URL.Query()

	if s := q.Get("station"); s != "" {
		switch types.Station(s) {
		case types.StationA, types.StationB:
			station = types.Station(s)
		default:
			return "", 0, fmt.Errorf("unknown station %q", s)
		}
	}

	limit = 100
	if s := q.Get("limit"); s != "" {
		n, convErr := strconv.Atoi(s)
		if convErr != nil {
			return "", 0, errors.New("invalid 'limit' (expected integer)")
		}
		if n <= 0 {
			return "", 0, errors.New("'limit' must be > 0")
		}
		if n > 1000 {
			return "", 0, errors.New("'limit' must be <= 1000")
		}
		limit = n
	}
	return station, limit, nil
}
