package model

// AttackOutcome is the resolution of one shot. The values double as the
// wire-level status strings.
type AttackOutcome string

const (
	AttackMiss AttackOutcome = "miss"
	AttackHit  AttackOutcome = "shot"
	AttackSunk AttackOutcome = "killed"
)

// AttackReport describes a resolved shot within a session
type AttackReport struct {
	Outcome  AttackOutcome
	Position Position

	// Attacker is the player who fired the shot
	Attacker UserID

	// NextPlayer is the turn owner after the shot resolved
	NextPlayer UserID

	// Finished is true when the shot defeated the opponent's fleet; Winner
	// is set only then
	Finished bool
	Winner   UserID
}
