package traderules

// Severity classifies a violation. Errors block trade legality; warnings are
// surfaced for human review and never block.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// RuleID identifies the rule that produced a violation. Callers and tests
// key off these rather than message text.
type RuleID string

const (
	RuleMalformedInput RuleID = "malformed_input"
	RuleEmptyTrade     RuleID = "empty_trade"

	RuleSalaryMatch RuleID = "salary_match"
	RuleHardCap     RuleID = "hard_cap"

	RuleRosterMin      RuleID = "roster_min"
	RuleRosterMax      RuleID = "roster_max"
	RuleTwoWayLimit    RuleID = "two_way_limit"
	RuleExhibit10Limit RuleID = "exhibit_10_limit"
	RulePositionDepth  RuleID = "position_depth"

	RuleRecentlySigned   RuleID = "recently_signed"
	RuleRecentlyTraded   RuleID = "recently_traded"
	RuleRecentlyExtended RuleID = "recently_extended"
	RuleNoTradeClause    RuleID = "no_trade_clause"
	RuleBirdRights       RuleID = "bird_rights"

	RulePickYearBounds     RuleID = "pick_year_bounds"
	RuleStepien            RuleID = "stepien"
	RulePickProtectionDupe RuleID = "pick_protection_dupe"
	RulePickSwapDupe       RuleID = "pick_swap_dupe"
)

// Violation is a structured rule breach. Message is presentation-ready copy;
// Data carries the numeric facts the message was built from.
type Violation struct {
	RuleID   RuleID         `json:"rule_id"`
	TeamID   string         `json:"team_id,omitempty"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Data     map[string]any `json:"data,omitempty"`
}

// Result is the outcome of a full trade evaluation.
type Result struct {
	Errors   []Violation `json:"errors"`
	Warnings []Violation `json:"warnings"`
}

// IsValid reports trade legality: no error-severity violations. Warnings
// never block.
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *Result) add(vs ...Violation) {
	for _, v := range vs {
		if v.Severity == SeverityWarning {
			r.Warnings = append(r.Warnings, v)
		} else {
			r.Errors = append(r.Errors, v)
		}
	}
}

func errorViolation(rule RuleID, teamID, message string, data map[string]any) Violation {
	return Violation{RuleID: rule, TeamID: teamID, Severity: SeverityError, Message: message, Data: data}
}

func warningViolation(rule RuleID, teamID, message string, data map[string]any) Violation {
	return Violation{RuleID: rule, TeamID: teamID, Severity: SeverityWarning, Message: message, Data: data}
}
