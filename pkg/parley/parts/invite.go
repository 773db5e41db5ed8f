package parts

// Invite wraps an invite part. Invites key on their code.
type Invite struct {
	*Part
}

func InviteFrom(p *Part) *Invite {
	if p == nil || p.Kind() != KindInvite {
		return nil
	}
	return &Invite{Part: p}
}

func (i *Invite) Code() string {
	return asString(i.rawValue("code"))
}

func (i *Invite) Uses() int {
	uses, _ := i.rawValue("uses").(float64)
	return int(uses)
}

func (i *Invite) Temporary() bool {
	return asBool(i.Get("temporary"))
}

func (i *Invite) Revoked() bool {
	return asBool(i.Get("revoked"))
}

func (i *Invite) Channel() *Channel {
	channel, _ := i.Get("channel").(*Channel)
	return channel
}
