// internal/app/policy/teampolicy/teampolicy.go
package teampolicy

import (
	"net/http"

	"github.com/inovatehub/hackhub/internal/app/system/authz"
	"github.com/inovatehub/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsLeader reports whether the given user leads the team.
func IsLeader(team models.Team, userID primitive.ObjectID) bool {
	return team.LeaderID == userID
}

// CanManageTeam reports whether the current request user may perform
// leader actions on the team (invite, resolve join requests, remove
// members, edit the description). Only the leader can; organizers get
// no special power over teams they do not lead.
func CanManageTeam(r *http.Request, team models.Team) bool {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	return team.LeaderID == uid
}
