package page

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FormInput writes values into the tracked form fields (keyed by name),
// re-checks the form's declared constraints and mirrors the result onto the
// submit button's disabled attribute. It returns the form validity.
func (c *Controller) FormInput(values map[string]string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.formInputs.Each(func(_ int, field *goquery.Selection) {
		name, ok := field.Attr("name")
		if !ok {
			return
		}
		v, ok := values[name]
		if !ok {
			return
		}
		if goquery.NodeName(field) == "textarea" {
			field.SetText(v)
			return
		}
		field.SetAttr("value", v)
	})

	valid := c.checkValidity()
	if valid {
		c.formBtn.RemoveAttr(attrDisabled)
	} else {
		c.formBtn.SetAttr(attrDisabled, "")
	}
	return valid
}

// FormValid reports whether every control in the form satisfies its constraints.
func (c *Controller) FormValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkValidity()
}

func (c *Controller) checkValidity() bool {
	valid := true
	c.form.Find("input, textarea, select").EachWithBreak(func(_ int, field *goquery.Selection) bool {
		tag := constraintTag(field)
		if tag == "" {
			return true
		}
		if err := c.validate.Var(fieldValue(field), tag); err != nil {
			valid = false
			return false
		}
		return true
	})
	return valid
}

func fieldValue(field *goquery.Selection) string {
	if goquery.NodeName(field) == "textarea" {
		return field.Text()
	}
	return field.AttrOr("value", "")
}

// constraintTag translates HTML constraint attributes into a validator tag.
func constraintTag(field *goquery.Selection) string {
	var rules []string
	if _, ok := field.Attr("required"); ok {
		rules = append(rules, "required")
	} else {
		rules = append(rules, "omitempty")
	}

	switch strings.ToLower(field.AttrOr("type", "")) {
	case "email":
		rules = append(rules, "email")
	case "url":
		rules = append(rules, "url")
	}

	if n, err := strconv.Atoi(field.AttrOr("minlength", "")); err == nil && n > 0 {
		rules = append(rules, "min="+strconv.Itoa(n))
	}
	if n, err := strconv.Atoi(field.AttrOr("maxlength", "")); err == nil && n >= 0 {
		rules = append(rules, "max="+strconv.Itoa(n))
	}

	if len(rules) == 1 && rules[0] == "omitempty" {
		return ""
	}
	return strings.Join(rules, ",")
}
