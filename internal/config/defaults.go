package config

import (
	_ "embed"
)

//go:embed defaults/penquin.yaml
var defaultPenquinYAML []byte

// DefaultPenquinConfig returns the hard-coded engine configuration.
// It mirrors defaults/penquin.yaml and is used when the embedded file
// cannot be parsed.
func DefaultPenquinConfig() PenquinConfig {
	return PenquinConfig{
		Physics: PhysicsConfig{
			Gravity:      0.5,
			MaxFallSpeed: 14,
			WalkSpeed:    5,
			JumpImpulse:  12,
		},
		Player: PlayerConfig{
			Width:  24,
			Height: 30,
		},
		Collision: CollisionConfig{
			HeadbuttMaxVY:     -0.1,
			HeadbuttTolerance: 10,
			StompMargin:       4,
			StompBounce:       8,
			BrickDampen:       0.35,
		},
		Timings: TimingsConfig{
			SquashTicks:       30,
			ShrinkTicks:       15,
			GrowTicks:         15,
			PuzzleCloseTicks:  39, // 650ms
			RewardTicks:       30,
			BrickBounceTicks:  8,
			DeathRestartTicks: 66, // 1100ms
			IntroTicks:        96,
			ExitMoveTicks:     25,
			ExitFadeTicks:     10,
			ExitFlyTicks:      51,
			GoalShakeTicks:    24,
		},
		Enemy: EnemyConfig{
			Speed:        1.2,
			DefaultRange: 210,
			Width:        28,
			Height:       28,
		},
		Goal: GoalConfig{
			BlockPushX: -26,
		},
		Death: DeathConfig{
			YMargin: 120,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultPenquinYAML
}
