package assets

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/milk9111/gustfall/common"
)

// ErrInvalidConstants is returned when a constants document decodes but
// describes an impossible configuration.
var ErrInvalidConstants = errors.New("assets: invalid constants")

// Constants is the global:constants document. Fields missing from the JSON
// keep the values from DefaultConstants.
type Constants struct {
	Defaults Defaults          `json:"defaults"`
	Player   PlayerConstants   `json:"player"`
	Umbrella UmbrellaConstants `json:"umbrella"`
	Goal     GoalConstants     `json:"goal"`
	Hazards  HazardConstants   `json:"hazards"`
}

type Defaults struct {
	Gravity     float64 `json:"gravity"`
	Density     float64 `json:"density"`
	Friction    float64 `json:"friction"`
	Restitution float64 `json:"restitution"`
}

type PlayerConstants struct {
	Size          [2]float64 `json:"size"`
	MaxHealth     int        `json:"maxhealth"`
	Speed         float64    `json:"speed"`
	AirAccel      float64    `json:"airaccel"`
	MaxSpeed      float64    `json:"maxspeed"`
	JumpImpulse   float64    `json:"jumpimpulse"`
	Density       float64    `json:"density"`
	Friction      float64    `json:"friction"`
	IFrameTime    float64    `json:"iframetime"`
	BoostCooldown float64    `json:"boostcooldown"`
}

type UmbrellaConstants struct {
	Size           [2]float64 `json:"size"`
	ClosedMomentum float64    `json:"closedmomentum"`
	RotateSpeed    float64    `json:"rotatespeed"`
	MaxFallSpeed   float64    `json:"maxfallspeed"`
	BoostImpulse   float64    `json:"boostimpulse"`
}

type GoalConstants struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type HazardConstants struct {
	BirdDamage         int     `json:"birdDamage"`
	BirdSensorRadius   float64 `json:"birdSensorRadius"`
	BirdKnockback      float64 `json:"birdKnockback"`
	BirdSpeed          float64 `json:"birdSpeed"`
	BirdAttackSpeed    float64 `json:"birdAttackSpeed"`
	BirdTelegraph      float64 `json:"birdTelegraph"`
	BirdSize           float64 `json:"birdSize"`
	LightningDamage    int     `json:"lightningDamage"`
	LightningKnockback float64 `json:"lightningKnockback"`
	StaticDamage       int     `json:"staticDamage"`
	StaticKnockback    float64 `json:"staticKnockback"`
	NestInterval       float64 `json:"nestInterval"`
	NestMaxBirds       int     `json:"nestMaxBirds"`
	NestSize           float64 `json:"nestSize"`
}

// DefaultConstants returns the tuning used when a document omits a field.
func DefaultConstants() Constants {
	return Constants{
		Defaults: Defaults{
			Gravity: common.DefaultGravity,
		},
		Player: PlayerConstants{
			Size:          [2]float64{0.8, 1.6},
			MaxHealth:     3,
			Speed:         3,
			AirAccel:      8,
			MaxSpeed:      8,
			JumpImpulse:   5,
			Density:       1,
			IFrameTime:    1,
			BoostCooldown: 1.5,
		},
		Umbrella: UmbrellaConstants{
			Size:           [2]float64{1.6, 0.8},
			ClosedMomentum: 0.98,
			RotateSpeed:    3,
			MaxFallSpeed:   1.5,
			BoostImpulse:   4,
		},
		Goal: GoalConstants{Width: 1.5, Height: 2},
		Hazards: HazardConstants{
			BirdDamage:         1,
			BirdSensorRadius:   6,
			BirdKnockback:      4,
			BirdSpeed:          2,
			BirdAttackSpeed:    6,
			BirdTelegraph:      0.5,
			BirdSize:           0.8,
			LightningDamage:    1,
			LightningKnockback: 3,
			StaticDamage:       1,
			StaticKnockback:    3,
			NestInterval:       5,
			NestMaxBirds:       2,
			NestSize:           1,
		},
	}
}

// ParseConstants decodes a constants document over DefaultConstants.
func ParseConstants(data []byte) (*Constants, error) {
	c := DefaultConstants()
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("assets: unmarshal constants: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Constants) Validate() error {
	switch {
	case c.Player.Size[0] <= 0 || c.Player.Size[1] <= 0:
		return fmt.Errorf("%w: player size %v", ErrInvalidConstants, c.Player.Size)
	case c.Umbrella.Size[0] <= 0 || c.Umbrella.Size[1] <= 0:
		return fmt.Errorf("%w: umbrella size %v", ErrInvalidConstants, c.Umbrella.Size)
	case c.Goal.Width <= 0 || c.Goal.Height <= 0:
		return fmt.Errorf("%w: goal size %vx%v", ErrInvalidConstants, c.Goal.Width, c.Goal.Height)
	case c.Player.MaxHealth <= 0:
		return fmt.Errorf("%w: maxhealth %d", ErrInvalidConstants, c.Player.MaxHealth)
	case c.Umbrella.ClosedMomentum < 0 || c.Umbrella.ClosedMomentum > 1:
		return fmt.Errorf("%w: closedmomentum %v", ErrInvalidConstants, c.Umbrella.ClosedMomentum)
	case !common.Finite(c.Defaults.Gravity):
		return fmt.Errorf("%w: gravity %v", ErrInvalidConstants, c.Defaults.Gravity)
	}
	return nil
}
