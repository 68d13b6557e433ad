package http

import (
	"net/http"
	"smartoffice/pkg/config"
	apperrors "smartoffice/pkg/errors"
	"smartoffice/pkg/model"
	"strconv"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractAssetFilter reads the optional "type" and "available" query
// parameters.
func ExtractAssetFilter(r *http.Request) (model.AssetFilter, error) {
	query := r.URL.Query()
	filter := model.AssetFilter{Type: query.Get("type")}

	if s := query.Get("available"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return model.AssetFilter{}, apperrors.InvalidInput("invalid available parameter: " + s)
		}
		filter.Available = &v
	}

	return filter, nil
}
