package parts

import (
	"fmt"
	"strconv"

	"github.com/parleychat/parley-go/pkg/parley/errors"
	"github.com/parleychat/parley-go/pkg/parley/transport"
)

var permissionBits = map[string]uint64{
	"create_instant_invite": 1 << 0,
	"kick_members":          1 << 1,
	"ban_members":           1 << 2,
	"manage_roles":          1 << 3,
	"manage_channels":       1 << 4,
	"manage_space":          1 << 5,
	"read_messages":         1 << 10,
	"send_messages":         1 << 11,
	"send_tts_messages":     1 << 12,
	"manage_messages":       1 << 13,
	"embed_links":           1 << 14,
	"attach_files":          1 << 15,
	"read_message_history":  1 << 16,
	"mention_everyone":      1 << 17,
	"voice_connect":         1 << 20,
	"voice_speak":           1 << 21,
	"voice_mute_members":    1 << 22,
	"voice_deafen_members":  1 << 23,
	"voice_move_members":    1 << 24,
}

func permissionMask(names []string) (uint64, error) {
	var mask uint64
	for _, name := range names {
		bit, ok := permissionBits[name]
		if !ok {
			return 0, errors.NewValidationError(fmt.Sprintf("unknown permission %q", name))
		}
		mask |= bit
	}
	return mask, nil
}

// OverwriteRecord scopes allow/deny bitmasks to one permission holder within
// a parent resource.
type OverwriteRecord struct {
	ID         string
	ParentID   string
	TargetKind Kind
	AllowBits  uint64
	DenyBits   uint64
}

// payload encodes the record the way the API expects it, bitmasks as strings.
func (o OverwriteRecord) payload() transport.Payload {
	return transport.Payload{
		"id":    o.ID,
		"type":  o.TargetKind.String(),
		"allow": strconv.FormatUint(o.AllowBits, 10),
		"deny":  strconv.FormatUint(o.DenyBits, 10),
	}
}
