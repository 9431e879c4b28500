package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskInquiryNotify = "inquiries.notify"

type InquiryNotifyPayload struct {
	InquiryID     string `json:"inquiryId"`
	ListingID     string `json:"listingId"`
	ListingName   string `json:"listingName"`
	BuilderEmail  string `json:"builderEmail,omitempty"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Message       string `json:"message"`
}

func NewInquiryNotifyTask(payload InquiryNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInquiryNotify, data, asynq.MaxRetry(5), asynq.TaskID("inquiry:"+payload.InquiryID)), nil
}

func ParseInquiryNotifyPayload(task *asynq.Task) (InquiryNotifyPayload, error) {
	var payload InquiryNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return InquiryNotifyPayload{}, err
	}
	return payload, nil
}
