package sim

import "github.com/ishant3366/minealert/internal/drone"

// CommandType identifies a drone control command.
type CommandType string

const (
	CmdTakeoff       CommandType = "takeoff"
	CmdLand          CommandType = "land"
	CmdMove          CommandType = "move"
	CmdClimb         CommandType = "climb"
	CmdDescend       CommandType = "descend"
	CmdReturnHome    CommandType = "return-home"
	CmdEmergencyStop CommandType = "emergency-stop"
)

// Command is a control action submitted to the engine. Dir is only
// meaningful for CmdMove.
type Command struct {
	Type CommandType
	Dir  drone.Direction
}
