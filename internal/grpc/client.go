package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthClient клиент grpc.health.v1 для проверки живости сервиса
type HealthClient struct {
	client healthpb.HealthClient
	conn   *grpc.ClientConn
}

// NewHealthClient создает клиента. Соединение устанавливается лениво при первом вызове.
func NewHealthClient(ctx context.Context, serverAddr string, opts ...grpc.DialOption) (*HealthClient, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.DialContext(ctx, serverAddr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", serverAddr, err)
	}

	return &HealthClient{
		client: healthpb.NewHealthClient(conn),
		conn:   conn,
	}, nil
}

// Close закрывает соединение с сервером
func (c *HealthClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Check возвращает статус сервиса, "" означает сервер целиком
func (c *HealthClient) Check(ctx context.Context, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := c.client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
