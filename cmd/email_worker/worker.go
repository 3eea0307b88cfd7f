package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-credential-service/pkg/helpers"
	"github.com/oksasatya/go-credential-service/pkg/mailer"
)

type outcome int

const (
	outcomeAck outcome = iota
	outcomeDrop
	outcomeRetry
)

type worker struct {
	Sender      mailer.Sender
	Logger      *logrus.Logger
	SendTimeout time.Duration
}

// handle processes one queue message. Payloads that can never succeed are
// dropped; send failures are retried.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogError(w.Logger, "bad message", err, nil)
		return outcomeDrop
	}
	if job.To == "" {
		helpers.LogError(w.Logger, "email job without recipient", nil, logrus.Fields{"template": job.Template})
		return outcomeDrop
	}
	mailer.EnsureRecipient(&job)

	subject, text, html, err := job.Resolve()
	if err != nil {
		helpers.LogError(w.Logger, "render failed", err, logrus.Fields{"template": job.Template})
		return outcomeDrop
	}

	c, cancel := context.WithTimeout(ctx, w.SendTimeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		helpers.LogError(w.Logger, "send failed", err, logrus.Fields{"template": job.Template})
		return outcomeRetry
	}
	helpers.LogInfo(w.Logger, "email sent", logrus.Fields{"template": job.Template})
	return outcomeAck
}
