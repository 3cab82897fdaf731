package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Team belongs to a tour and is led by a captain who is always a member.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	TourID    int       `bun:"tour_id,notnull,unique:teams_tour_name" json:"tourID"`
	Name      string    `bun:"name,notnull,unique:teams_tour_name" json:"name"`
	CaptainID uuid.UUID `bun:"captain_id,type:uuid,notnull" json:"captainID"`

	Captain *User         `bun:"rel:belongs-to,join:captain_id=id" json:"captain,omitempty"`
	Members []*TeamMember `bun:"rel:has-many,join:id=team_id" json:"members,omitempty"`
}

// TeamMember links a user to a team.
type TeamMember struct {
	bun.BaseModel `bun:"table:team_members,alias:tm"`

	ID     int       `bun:"id,pk,autoincrement" json:"id"`
	TeamID int       `bun:"team_id,notnull,unique:team_members_no_dupes" json:"teamID"`
	UserID uuid.UUID `bun:"user_id,type:uuid,notnull,unique:team_members_no_dupes" json:"userID"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}
