package assets

import "fmt"

// Symbolic asset keys used by the game.
const (
	ConstantsKey = "global:constants"
	RetroFont    = "shared:retro"

	PlatformTexture        = "game:newplatform"
	PlayerTexture          = "game:player"
	PlayerFrontTexture     = "game:front"
	UmbrellaTexture        = "game:umbrella"
	UmbrellaClosedTexture  = "game:closed"
	WindTexture            = "game:wind"
	GoalTexture            = "game:goal"
	HPIndicatorTexture     = "game:hp_indicator"
	BoostTexture           = "game:boost"
	PlayerIdleAnimation    = "game:player_idle_animation"
	PlayerWalkAnimation    = "game:player_walk_animation"
	PlayerFallingAnimation = "game:player_falling_animation"
	UmbrellaOpenAnimation  = "game:umbrella_open_animation"
	UmbrellaDodgeAnimation = "game:umbrella_dodge_animation"
	GoalAnimation          = "game:goal_animation"
	BirdWarningTexture     = "game:bird_warning"
	LightningTexture       = "game:lightning"
	NestTexture            = "game:nest"

	WindFrames  = 9
	CloudTiles  = 4
	DefaultBird = "red"
)

// BirdColors are the colours with a flapping filmstrip.
var BirdColors = []string{"red", "blue", "green", "brown"}

func BirdFlapping(color string) string {
	return fmt.Sprintf("game:%s_bird_flapping", color)
}

func WindFrame(i int) string {
	return fmt.Sprintf("game:wind_frame%d", i)
}

func CloudTexture(i int) string {
	return fmt.Sprintf("platform:cloud%d", i)
}
