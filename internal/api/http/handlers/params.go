package handlers

import (
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	util "github.com/spec-kit/blog-service/pkg/util/errorutil"
)

const (
	defaultLimit = 100
	maxLimit     = 100
)

// parseListParams enforces the strict query guard for listing endpoints: the
// allow-list is exactly {skip, limit}. Unknown parameters are rejected first,
// one detail per parameter, before range checks run.
func parseListParams(c *fiber.Ctx) (int, int, error) {
	params := c.Queries()

	var unknown []string
	for name := range params {
		if name != "skip" && name != "limit" {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		details := make([]util.Detail, 0, len(unknown))
		for _, name := range unknown {
			details = append(details, util.Detail{
				Type:  "value_error",
				Loc:   []any{"query", name},
				Msg:   "Unknown query parameter",
				Input: params[name],
			})
		}
		return 0, 0, util.NewValidationError(details...)
	}

	var details []util.Detail

	skip := 0
	if raw, ok := params["skip"]; ok {
		v, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			details = append(details, intParsing("skip", raw))
		case v < 0:
			details = append(details, util.Detail{
				Type:  "greater_than_equal",
				Loc:   []any{"query", "skip"},
				Msg:   "Input should be greater than or equal to 0",
				Input: raw,
			})
		default:
			skip = v
		}
	}

	limit := defaultLimit
	if raw, ok := params["limit"]; ok {
		v, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			details = append(details, intParsing("limit", raw))
		case v < 1:
			details = append(details, util.Detail{
				Type:  "greater_than_equal",
				Loc:   []any{"query", "limit"},
				Msg:   "Input should be greater than or equal to 1",
				Input: raw,
			})
		case v > maxLimit:
			details = append(details, util.Detail{
				Type:  "less_than_equal",
				Loc:   []any{"query", "limit"},
				Msg:   "Input should be less than or equal to 100",
				Input: raw,
			})
		default:
			limit = v
		}
	}

	if len(details) > 0 {
		return 0, 0, util.NewValidationError(details...)
	}
	return skip, limit, nil
}

func intParsing(name, raw string) util.Detail {
	return util.Detail{
		Type:  "int_parsing",
		Loc:   []any{"query", name},
		Msg:   "Input should be a valid integer, unable to parse string as an integer",
		Input: raw,
	}
}

// parsePathID parses a UUID path parameter, yielding a structured validation
// error for malformed values.
func parsePathID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, util.NewValidationError(util.Detail{
			Type:  "uuid_parsing",
			Loc:   []any{"path", name},
			Msg:   "Input should be a valid UUID, invalid UUID format",
			Input: raw,
		})
	}
	return id, nil
}
