package mailer

import (
	"context"
	"resetpass/internal/core/domain/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SES delivers mail through Amazon SES for deployments without their own
// relay.
type SES struct {
	client *ses.Client
	// This address must be verified with Amazon SES.
	sender string
}

func NewSES(awsConfig aws.Config, sender string) *SES {
	return &SES{client: ses.NewFromConfig(awsConfig), sender: sender}
}

func (s *SES) Send(ctx context.Context, to common.Email, subject string, htmlBody string) error {
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: &s.sender,
		Destination: &types.Destination{
			ToAddresses: []string{string(to)},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(htmlBody),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	})
	return err
}
