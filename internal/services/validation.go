package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/yungbote/movies-backend/internal/platform/apierr"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	indexSuffix  = regexp.MustCompile(`\[\d+\]`)
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
	})
	return validate
}

// fieldMessages maps "<Struct>.<Field>|<tag>" to the client-facing message.
type fieldMessages map[string]string

// validateInput runs struct validation and folds violations into a single
// 400 whose message is the sorted, de-duplicated, comma-joined list.
func validateInput(in any, messages fieldMessages) error {
	err := inputValidator().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierr.BadRequest("validation_failed", "%s", err.Error())
	}

	seen := map[string]bool{}
	var out []string
	for _, fe := range verrs {
		ns := indexSuffix.ReplaceAllString(fe.StructNamespace(), "")
		msg, ok := messages[ns+"|"+fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		if !seen[msg] {
			seen[msg] = true
			out = append(out, msg)
		}
	}
	sort.Strings(out)
	return apierr.BadRequest("validation_failed", "%s", strings.Join(out, ","))
}

// FlexID accepts a JSON string or number. Older clients send numeric movie ids.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

func (id *FlexID) String() string {
	if id == nil {
		return ""
	}
	return strings.TrimSpace(string(*id))
}
