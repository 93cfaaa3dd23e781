package event

import "time"

// Method is the stored value for how a fight ended.
type Method string

const (
	MethodTKOKO      Method = "TKO_KO"
	MethodSubmission Method = "Submission"
	MethodDecision   Method = "Decision"
	MethodOther      Method = "Other"
)

// tkoDisplayLabel is accepted on input and normalized to MethodTKOKO.
const tkoDisplayLabel = "TKO/KO"

func Methods() []Method {
	return []Method{MethodTKOKO, MethodSubmission, MethodDecision, MethodOther}
}

// ParseMethod is case-sensitive.
func ParseMethod(raw string) (Method, bool) {
	switch raw {
	case string(MethodTKOKO), tkoDisplayLabel:
		return MethodTKOKO, true
	case string(MethodSubmission):
		return MethodSubmission, true
	case string(MethodDecision):
		return MethodDecision, true
	case string(MethodOther):
		return MethodOther, true
	default:
		return "", false
	}
}

func (m Method) Label() string {
	if m == MethodTKOKO {
		return tkoDisplayLabel
	}
	return string(m)
}

type Event struct {
	ID   string
	Name string
	Date time.Time
}

// Fight result fields stay nil until the bout concludes.
type Fight struct {
	ID       string
	EventID  string
	Bout     string
	FighterA string
	FighterB string
	Winner   *string
	Method   *Method
}

func (f Fight) IsCompleted() bool {
	return f.Winner != nil && f.Method != nil
}

func (f Fight) HasFighter(name string) bool {
	return name != "" && (name == f.FighterA || name == f.FighterB)
}
