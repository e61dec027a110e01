// Package config provides YAML-based tuning for the penquin level engine:
// physics, collision thresholds, scripted timings and difficulty presets.
package config

// PenquinConfig contains all tunable parameters of the level engine.
// Durations are expressed in simulation ticks (60 per second by default),
// distances in world pixels.
type PenquinConfig struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Collision CollisionConfig `yaml:"collision"`
	Timings   TimingsConfig   `yaml:"timings"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Goal      GoalConfig      `yaml:"goal"`
	Death     DeathConfig     `yaml:"death"`
}

// PhysicsConfig defines gravity and movement speeds.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // Added to vy every tick
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // Terminal velocity
	WalkSpeed    float64 `yaml:"walk_speed"`     // |vx| while walking or steering a jump
	JumpImpulse  float64 `yaml:"jump_impulse"`   // Upward speed applied on jump
}

// PlayerConfig defines the player's body size.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CollisionConfig holds the thresholds used to classify contacts.
type CollisionConfig struct {
	HeadbuttMaxVY     float64 `yaml:"headbutt_max_vy"`    // vy must be below this (moving up)
	HeadbuttTolerance float64 `yaml:"headbutt_tolerance"` // |playerTop - tileBottom| allowance
	StompMargin       float64 `yaml:"stomp_margin"`       // foot must be this far above enemy center
	StompBounce       float64 `yaml:"stomp_bounce"`       // upward speed after a stomp
	BrickDampen       float64 `yaml:"brick_dampen"`       // vy multiplier after hitting a brick
}

// TimingsConfig holds the length of every scripted animation and delay.
type TimingsConfig struct {
	SquashTicks       int `yaml:"squash_ticks"`
	ShrinkTicks       int `yaml:"shrink_ticks"`
	GrowTicks         int `yaml:"grow_ticks"`
	PuzzleCloseTicks  int `yaml:"puzzle_close_ticks"`
	RewardTicks       int `yaml:"reward_ticks"`
	BrickBounceTicks  int `yaml:"brick_bounce_ticks"`
	DeathRestartTicks int `yaml:"death_restart_ticks"`
	IntroTicks        int `yaml:"intro_ticks"`
	ExitMoveTicks     int `yaml:"exit_move_ticks"`
	ExitFadeTicks     int `yaml:"exit_fade_ticks"`
	ExitFlyTicks      int `yaml:"exit_fly_ticks"`
	GoalShakeTicks    int `yaml:"goal_shake_ticks"`
}

// EnemyConfig defines patrol behaviour.
type EnemyConfig struct {
	Speed        float64 `yaml:"speed"`         // Pixels per tick
	DefaultRange float64 `yaml:"default_range"` // Half-range when the object has no range property
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
}

// GoalConfig defines what happens when the UFO rejects the player.
type GoalConfig struct {
	BlockPushX float64 `yaml:"block_push_x"` // Horizontal displacement applied when blocked
}

// DeathConfig defines the fallback death line.
type DeathConfig struct {
	YMargin float64 `yaml:"y_margin"` // deathY = mapHeight + YMargin
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value into a preset, defaulting to normal.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return DifficultyNormal
	}
}
