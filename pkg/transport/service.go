package transport

import (
	"context"
	"errors"

	"github.com/cuemby/eventchannel/api/proto"
	"github.com/cuemby/eventchannel/pkg/channel"
	"github.com/cuemby/eventchannel/pkg/proxy"
	"github.com/cuemby/eventchannel/pkg/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Health service names reported by the broker and by consumer endpoints
var (
	BrokerServiceName   = proto.BrokerService_ServiceDesc.ServiceName
	ConsumerServiceName = proto.ConsumerService_ServiceDesc.ServiceName
)

// toStatus maps domain errors onto gRPC status codes
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case errors.Is(err, channel.ErrChannelNotFound), errors.Is(err, errUnknownConnection):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, channel.ErrChannelUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, proxy.ErrAlreadyConnected):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, proxy.ErrNotConnected), errors.Is(err, proxy.ErrDestroyed):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, channel.ErrInvalidCommand), errors.Is(err, types.ErrInvalidResetRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// resetFromProto converts a wire reset request. Unset optional fields stay
// nil so they do not narrow the selection.
func resetFromProto(in *proto.ResetRequest) types.ResetRequest {
	req := types.ResetRequest{ChannelName: in.GetChannelName()}
	if in.GetDateFloor() != nil {
		floor := in.GetDateFloor().AsTime()
		req.DateFloor = &floor
	}
	if in.GetRetryCeiling() != nil {
		ceiling := int(in.GetRetryCeiling().GetValue())
		req.RetryCeiling = &ceiling
	}
	if in.GetEventId() != nil {
		id := in.GetEventId().GetValue()
		req.EventID = &id
	}
	return req
}

// resetToProto is the client-side counterpart of resetFromProto
func resetToProto(req types.ResetRequest) *proto.ResetRequest {
	out := &proto.ResetRequest{ChannelName: req.ChannelName}
	if req.DateFloor != nil {
		out.DateFloor = timestamppb.New(*req.DateFloor)
	}
	if req.RetryCeiling != nil {
		out.RetryCeiling = wrapperspb.Int32(int32(*req.RetryCeiling))
	}
	if req.EventID != nil {
		out.EventId = wrapperspb.Int64(*req.EventID)
	}
	return out
}
