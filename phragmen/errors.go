package phragmen

import "errors"

var (
	// ErrCommitteeSize indicates k < 1.
	ErrCommitteeSize = errors.New("phragmen: committee size must be positive")
	// ErrNotEnoughApproved indicates fewer approved candidates than seats.
	ErrNotEnoughApproved = errors.New("phragmen: committee size exceeds the number of approved candidates")
	// ErrTimeLimit indicates the enumeration ran out of its time budget.
	ErrTimeLimit = errors.New("phragmen: time limit exceeded")
)
