package event

import "teamfinder/internal/domain/event"

type createInput struct {
	Body event.CreateRequest
}

type createOutput struct {
	Body event.Event
}

type getInput struct {
	ID int64 `path:"id"`
}

type getOutput struct {
	Body event.Event
}

type listInput struct{}

type listOutput struct {
	Body []event.Event
}

type participantsInput struct {
	ID int64 `path:"id"`
}

type participantsOutput struct {
	Body []event.Participant
}

type joinInput struct {
	ID   int64 `path:"id"`
	Body JoinBody
}

type JoinBody struct {
	Nick string `json:"nick"`
	Role string `json:"role"`
}

type joinOutput struct {
	Body event.Participant
}

type leaveInput struct {
	ID     int64 `path:"id"`
	UserID int64 `path:"userID"`
}

type leaveOutput struct {
	Body LeaveResponse
}

type LeaveResponse struct {
	Message string `json:"message"`
}
