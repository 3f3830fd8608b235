package domain

// User is the server-side record of one connected client's
// matchmaking state. ID is generated once per connection and is the
// only identity ever shown to other users; ConnKey is the opaque
// transport handle and stays server-internal.
type User struct {
	ID        UserID
	ConnKey   string
	Interests []string
	InSession bool
	PartnerID UserID
	Room      RoomID
}

func NewUser(connKey string) *User {
	return &User{
		ID:      NewUserID(),
		ConnKey: connKey,
	}
}

// SharesInterest reports whether the two users have at least one
// interest tag in common. Case-sensitive exact match.
func (u *User) SharesInterest(other *User) bool {
	for _, a := range u.Interests {
		for _, b := range other.Interests {
			if a == b {
				return true
			}
		}
	}
	return false
}
