package catalog

import (
	"errors"
	"fmt"
	"strings"

	"routine-advisor-be/internal/entity"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Problem describes one invalid record in a catalog document.
type Problem struct {
	Index   int
	Key     string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("products[%d] (%s): %s", p.Index, p.Key, p.Message)
}

// Validate reports records missing required fields and derived keys that are
// not unique within the document.
func Validate(products []entity.Product) []Problem {
	var problems []Problem
	firstSeen := make(map[string]int, len(products))

	for i, p := range products {
		key := p.DerivedKey()

		if err := validate.Struct(p); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					problems = append(problems, Problem{
						Index:   i,
						Key:     key,
						Message: fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()),
					})
				}
			} else {
				problems = append(problems, Problem{Index: i, Key: key, Message: err.Error()})
			}
		}

		if key == "" {
			continue
		}
		if j, ok := firstSeen[key]; ok {
			problems = append(problems, Problem{
				Index:   i,
				Key:     key,
				Message: fmt.Sprintf("duplicate key, first used by products[%d]", j),
			})
			continue
		}
		firstSeen[key] = i
	}
	return problems
}
