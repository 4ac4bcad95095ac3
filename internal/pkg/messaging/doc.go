// Package messaging publishes and consumes domain events over a broker.
//
// Business code talks to the Messaging interface; the driver (NATS, Kafka, NSQ
// or the in-process memory broker) is picked from configuration at startup.
package messaging
