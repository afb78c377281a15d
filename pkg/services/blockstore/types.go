/*
Package blockstore describes the fileservice.FileService gRPC API: request and
response messages, their Protocol Buffers encoding, the service descriptor and
the client.

Messages are encoded manually and are wire-compatible with the following
definitions:

	service FileService {
	  rpc WriteData(WriteRequest) returns (WriteResponse);
	  rpc ReadData(ReadRequest) returns (ReadResponse);
	}

	message WriteRequest  { string request_id = 1; bytes data = 2; }
	message WriteResponse { string request_id = 1; uint64 offset = 2; bool success = 3; string error_message = 4; }
	message ReadRequest   { string request_id = 1; }
	message ReadResponse  { string request_id = 1; bytes data = 2; bool success = 3; string error_message = 4; }
*/
package blockstore

// WriteRequest asks to store Data under RequestID.
type WriteRequest struct {
	RequestID string
	Data      []byte
}

// WriteResponse is a result of WriteRequest. Offset is meaningful only if
// Success is set, otherwise ErrorMessage describes the failure.
type WriteResponse struct {
	RequestID    string
	Offset       uint64
	Success      bool
	ErrorMessage string
}

// ReadRequest asks for the payload stored under RequestID.
type ReadRequest struct {
	RequestID string
}

// ReadResponse is a result of ReadRequest. Data is meaningful only if Success
// is set, otherwise ErrorMessage describes the failure.
type ReadResponse struct {
	RequestID    string
	Data         []byte
	Success      bool
	ErrorMessage string
}

const (
	fieldReqID = 1

	fieldWriteReqData = 2

	fieldWriteRespOffset  = 2
	fieldWriteRespSuccess = 3
	fieldWriteRespError   = 4

	fieldReadRespData    = 2
	fieldReadRespSuccess = 3
	fieldReadRespError   = 4
)
