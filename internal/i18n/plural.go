package i18n

type Form string

const (
	FormOne   Form = "one"
	FormFew   Form = "few"
	FormMany  Form = "many"
	FormOther Form = "other"
)

// PluralForm selects the form tag for count. Russian uses the one/few/many
// split on the last digits; every other language is one/other.
func PluralForm(count int, lang string) Form {
	if Normalize(lang) == "ru" {
		if count < 0 {
			count = -count
		}
		lastDigit := count % 10
		lastTwo := count % 100
		switch {
		case lastTwo >= 11 && lastTwo <= 19:
			return FormMany
		case lastDigit == 1:
			return FormOne
		case lastDigit >= 2 && lastDigit <= 4:
			return FormFew
		default:
			return FormMany
		}
	}
	if count == 1 {
		return FormOne
	}
	return FormOther
}

func RepeatsKey(count int, lang string) string {
	return "repeat_" + string(PluralForm(count, lang))
}
