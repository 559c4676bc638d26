// Package messaging exposes a broker-agnostic publish/consume API.
//
// Business code depends only on the interfaces here; the concrete broker
// (NATS, Kafka or NSQ) is chosen by configuration through the factory, so
// swapping brokers never touches use-case code.
package messaging
