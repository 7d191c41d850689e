package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/config"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/membership"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/utils"
)

// StartKafkaConsumer consumes membership events and writes in-app
// notifications. Runs until ctx is cancelled; a nil reader (no broker
// configured) is a no-op so local setups work without Kafka.
func StartKafkaConsumer(ctx context.Context, cfg *config.Config, svc *Service) {
	reader := utils.NewKafkaReader(cfg, "notification-service")
	if reader == nil {
		log.Println("ℹ️ Kafka consumer disabled (no brokers configured)")
		return
	}

	go func() {
		defer reader.Close()
		log.Println("✅ Notification consumer started")

		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("⚠️ Kafka read failed: %v", err)
				continue
			}

			var ev membership.Event
			if err := json.Unmarshal(msg.Value, &ev); err != nil {
				log.Printf("⚠️ Skipping malformed event (key=%s): %v", string(msg.Key), err)
				continue
			}

			if err := svc.RecordMembershipEvent(ev, msg.Value); err != nil {
				log.Printf("⚠️ Failed to record notification for user %d: %v", ev.UserID, err)
			}
		}
	}()
}
