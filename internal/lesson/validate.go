package lesson

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"chalk/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateWeek checks a decoded week plan against its structural rules.
// A day with no topic is reported as a missing-topic error naming the
// 1-based day number; anything else is an invalid request.
func ValidateWeek(w *Week) error {
	if err := validate.Struct(w); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return errors.NewInvalidRequest(err.Error())
		}
		for _, fe := range verrs {
			if day, ok := missingTopicDay(fe); ok {
				return errors.NewMissingTopic(day)
			}
		}
		fe := verrs[0]
		return errors.NewInvalidRequest(fmt.Sprintf("field %q failed %q validation", fe.Namespace(), fe.Tag()))
	}
	return nil
}

// missingTopicDay reports whether the failure is a required-topic failure
// on a day entry, and if so which day (1-based).
func missingTopicDay(fe validator.FieldError) (int, bool) {
	if fe.Tag() != "required" {
		return 0, false
	}
	ns := fe.StructNamespace()
	open := strings.Index(ns, "Days[")
	if open < 0 || !strings.HasSuffix(ns, "].Topic") {
		return 0, false
	}
	end := strings.Index(ns[open:], "]")
	if end < 0 {
		return 0, false
	}
	idx, err := strconv.Atoi(ns[open+len("Days[") : open+end])
	if err != nil {
		return 0, false
	}
	return idx + 1, true
}
