package entity

// DeliveryStatus tracks where a delivery is in its lifecycle.
type DeliveryStatus int16

const (
	DeliveryStatusUnknown DeliveryStatus = 0

	// DeliveryStatusPending means the delivery exists but no attempt has
	// succeeded or permanently failed yet.
	DeliveryStatusPending DeliveryStatus = 1

	// DeliveryStatusSuccess means an attempt got a 2xx response.
	DeliveryStatusSuccess DeliveryStatus = 2

	// DeliveryStatusFailed means the last attempt did not get a 2xx response.
	DeliveryStatusFailed DeliveryStatus = 3
)

func (ds DeliveryStatus) String() string {
	switch ds {
	case DeliveryStatusPending:
		return "pending"
	case DeliveryStatusSuccess:
		return "success"
	case DeliveryStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
