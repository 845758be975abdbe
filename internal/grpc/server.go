package grpc

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/moviereview/subtitles/internal/apperrors"
	"github.com/moviereview/subtitles/internal/config"
	"github.com/moviereview/subtitles/internal/models"
	"github.com/moviereview/subtitles/internal/services"
)

// ServiceName is the fully qualified name of the subtitle gRPC service.
const ServiceName = "subtitles.v1.SubtitleService"

const (
	SearchMethod   = "/" + ServiceName + "/Search"
	DownloadMethod = "/" + ServiceName + "/Download"
)

// SubtitleServiceServer is the server API of the subtitle service. Requests
// are free-form structs carrying the same fields as the HTTP query string;
// responses are lists with the same JSON shape the HTTP API returns.
type SubtitleServiceServer interface {
	Search(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error)
	Download(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error)
}

// server implements SubtitleServiceServer
type server struct {
	searcher   services.SubtitleSearcher
	downloader services.SubtitleDownloader
	logger     zerolog.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(searcher services.SubtitleSearcher, downloader services.SubtitleDownloader) SubtitleServiceServer {
	return &server{
		searcher:   searcher,
		downloader: downloader,
		logger:     config.GetLogger(),
	}
}

// Search implements SubtitleServiceServer.Search
func (s *server) Search(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	sr := models.SearchRequest{
		Query:     stringField(req, "query"),
		IMDBID:    stringField(req, "imdbId"),
		Season:    intField(req, "season"),
		Episode:   intField(req, "episode"),
		Language:  stringField(req, "language"),
		MovieHash: stringField(req, "moviehash"),
	}
	s.logger.Debug().Str("query", sr.Query).Str("imdb_id", sr.IMDBID).Msg("Search called")

	result, err := s.searcher.Search(ctx, sr)
	if err != nil {
		if errors.Is(err, &apperrors.ErrMissingParameter{}) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		s.logger.Error().Err(err).Msg("Failed to search subtitles")
		return nil, status.Error(codes.Internal, "Failed to search subtitles")
	}

	list := &structpb.ListValue{}
	if err := protojson.Unmarshal(result.Body, list); err != nil {
		s.logger.Error().Err(err).Msg("Failed to convert search results")
		return nil, status.Error(codes.Internal, "Failed to search subtitles")
	}
	return list, nil
}

// Download implements SubtitleServiceServer.Download
func (s *server) Download(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	dr := models.DownloadRequest{URL: stringField(req, "url"), Format: stringField(req, "format")}
	s.logger.Debug().Str("url", dr.URL).Str("format", dr.Format).Msg("Download called")

	result, err := s.downloader.DownloadSubtitle(ctx, dr)
	if err != nil {
		if errors.Is(err, &apperrors.ErrMissingParameter{}) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		s.logger.Error().Err(err).Str("url", dr.URL).Msg("Failed to download subtitle")
		return nil, status.Error(codes.Internal, "Failed to download subtitle")
	}

	values := make([]*structpb.Value, 0, len(result.Cues))
	for _, cue := range result.Cues {
		values = append(values, structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"index": structpb.NewNumberValue(float64(cue.Index)),
			"start": structpb.NewNumberValue(float64(cue.Start)),
			"end":   structpb.NewNumberValue(float64(cue.End)),
			"text":  structpb.NewStringValue(cue.Text),
		}}))
	}
	return &structpb.ListValue{Values: values}, nil
}

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

// intField accepts numbers and numeric strings, like the HTTP query string does.
func intField(req *structpb.Struct, name string) int {
	v := req.GetFields()[name]
	switch v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return int(v.GetNumberValue())
	case *structpb.Value_StringValue:
		return models.ParseInt(v.GetStringValue())
	default:
		return 0
	}
}

func searchHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SubtitleServiceServer).Search(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SearchMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SubtitleServiceServer).Search(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func downloadHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SubtitleServiceServer).Download(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DownloadMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SubtitleServiceServer).Download(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// serviceDesc describes SubtitleService for grpc.Server.RegisterService.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SubtitleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Search", Handler: searchHandler},
		{MethodName: "Download", Handler: downloadHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "subtitles/v1/subtitles.proto",
}
