package blogservice

import (
	"github.com/hazelko/inkpost/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "blog_title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "blog_title", "must be at most 200 characters long")
}

func validateBody(v *common.Validator, body string) {
	v.Check(body != "", "text_field", "must be provided")
}

func validateStatus(v *common.Validator, status string) {
	v.Check(status != "", "status", "must be provided")
}

func validateDate(v *common.Validator, date string) {
	v.Check(date != "", "date", "must be provided")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
