package shipping

// Session holds the transient state of one picking session: the result of
// the latest calculation and the per-order verification flags. A new Session
// is built for every calculation, so stale flags cannot survive a re-run by
// construction.
type Session struct {
	Result   *Result         `json:"result"`
	Verified map[string]bool `json:"verified"`
}

func NewSession(result *Result) *Session {
	return &Session{
		Result:   result,
		Verified: make(map[string]bool),
	}
}

// ToggleVerification flips the picked flag for one order number and returns
// the new state.
func (s *Session) ToggleVerification(orderNumber string) bool {
	s.Verified[orderNumber] = !s.Verified[orderNumber]
	return s.Verified[orderNumber]
}

// VerificationSummary counts picked and unpicked orders.
func (s *Session) VerificationSummary() (verified int, unverified int, total int) {
	for _, ok := range s.Verified {
		if ok {
			verified++
		}
	}
	if s.Result != nil {
		total = len(s.Result.Groups)
	}
	unverified = total - verified
	return
}
