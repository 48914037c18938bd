package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sarthakkanade/campus-events-go/models"
)

// CreatePoll attaches a new active poll to the event. Options start at
// zero votes with an empty voter list.
func CreatePoll(ev *models.Event, actor Actor, question string, options []string) (*models.Poll, error) {
	if !actor.CanManage(ev) {
		return nil, errUnauthorized("Not authorized to create polls")
	}
	if question == "" {
		return nil, errValidation("question is required")
	}
	if len(options) < 2 {
		return nil, errValidation("a poll needs at least two options")
	}

	opts := make([]models.PollOption, len(options))
	for i, text := range options {
		opts[i] = models.PollOption{Text: text}
	}

	ev.Polls = append(ev.Polls, models.Poll{
		ID:       primitive.NewObjectID(),
		Question: question,
		Options:  opts,
		Active:   true,
		Voters:   []primitive.ObjectID{},
	})
	return &ev.Polls[len(ev.Polls)-1], nil
}

// Vote records a first (and only) vote for userID on the poll. Tallies
// are anonymous counts plus a voter list, so a cast vote cannot be
// changed, only refused the second time. Invariant maintained:
// sum(option votes) == len(voters).
func Vote(ev *models.Event, pollID primitive.ObjectID, optionIndex int, userID primitive.ObjectID) (*models.Poll, error) {
	poll := ev.PollByID(pollID)
	if poll == nil {
		return nil, errNotFound("Poll not found")
	}
	if !poll.Active {
		return nil, errInvalidState("Poll is closed")
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return nil, errValidation("invalid option index")
	}
	for _, v := range poll.Voters {
		if v == userID {
			return nil, errConflict("You already voted")
		}
	}

	poll.Options[optionIndex].Votes++
	poll.Voters = append(poll.Voters, userID)
	return poll, nil
}

// ClosePoll deactivates a poll so no further votes land.
func ClosePoll(ev *models.Event, pollID primitive.ObjectID, actor Actor) (*models.Poll, error) {
	if !actor.CanManage(ev) {
		return nil, errUnauthorized("Not authorized to close polls")
	}
	poll := ev.PollByID(pollID)
	if poll == nil {
		return nil, errNotFound("Poll not found")
	}
	poll.Active = false
	return poll, nil
}
