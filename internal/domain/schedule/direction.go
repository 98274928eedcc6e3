package schedule

import (
	"fmt"
	"strings"

	"github.com/forPelevin/reelplan/internal/types"
)

type shot struct {
	visual  string // %[1]s = avatar, %[2]s = topic
	cameras []string
}

var shots = map[types.Role]shot{
	types.RoleHook: {
		visual:  `%[1]s avatar in a tight close-up under a bold kinetic title reading "%[2]s"`,
		cameras: []string{"snap zoom in", "whip pan into frame"},
	},
	types.RoleBody: {
		visual:  "B-roll montage illustrating %[2]s, %[1]s avatar picture-in-picture in the lower third",
		cameras: []string{"slow push in", "lateral slide", "handheld follow"},
	},
	types.RoleClimax: {
		visual:  "High-contrast reveal shot for %[2]s with the %[1]s avatar centered and a glowing result callout",
		cameras: []string{"dolly zoom", "crash zoom"},
	},
	types.RoleCTA: {
		visual:  "%[1]s avatar facing camera beside a follow prompt and a %[2]s end card",
		cameras: []string{"gentle pull back"},
	},
}

// direct returns the visual prompt and camera move for the ord-th beat of role.
func direct(role types.Role, ord int, topic, avatar string) (string, string) {
	s, ok := shots[role]
	if !ok {
		s = shots[types.RoleBody]
	}
	avatar = strings.ReplaceAll(strings.TrimSpace(avatar), "-", " ")
	if avatar == "" {
		avatar = "presenter"
	}
	return fmt.Sprintf(s.visual, avatar, topic), s.cameras[ord%len(s.cameras)]
}
