package messaging

// NewKafkaProducerWithWriter expone el constructor interno para tests.
var NewKafkaProducerWithWriter = newKafkaProducer
