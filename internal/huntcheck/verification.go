package huntcheck

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// verifyResponse checks status, request id echo and answer of one case.
// Error answers are only checked for their status.
func verifyResponse(tc Case, resp *response) error {
	if resp.status != tc.WantStatus {
		return fmt.Errorf("%w: got %d, want %d (body %q)",
			ErrUnexpectedStatus, resp.status, tc.WantStatus, preview(resp.body))
	}
	if tc.ID != "" && resp.requestID != tc.ID {
		return fmt.Errorf("%w: got %q, want %q", ErrRequestIDLost, resp.requestID, tc.ID)
	}
	if tc.WantStatus >= 300 {
		return nil
	}

	if tc.WantJSON {
		return compareJSON(tc.Want, resp.body)
	}
	if got := string(resp.body); got != tc.Want {
		return fmt.Errorf("%w: got %q, want %q", ErrWrongAnswer, preview([]byte(got)), tc.Want)
	}
	return nil
}

// compareJSON compares two JSON documents ignoring key order and spacing.
func compareJSON(want string, got []byte) error {
	var w, g any
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		return fmt.Errorf("failed to decode expected answer: %w", err)
	}
	if err := json.Unmarshal(got, &g); err != nil {
		return fmt.Errorf("%w: body is not JSON: %q", ErrWrongAnswer, preview(got))
	}
	if !reflect.DeepEqual(w, g) {
		return fmt.Errorf("%w: got %s, want %s", ErrWrongAnswer, strings.TrimSpace(string(preview(got))), want)
	}
	return nil
}

// preview truncates long bodies for log output.
func preview(b []byte) []byte {
	if len(b) > maxBodyPreview {
		return b[:maxBodyPreview]
	}
	return b
}
