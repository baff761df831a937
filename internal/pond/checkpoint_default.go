package pond

import (
	"pondnet/internal/model"
	"pondnet/internal/nn"
)

// Constant tables for the shipped checkpoint. The values are carried
// verbatim from the training artifact; do not round or re-derive them.
// The first three feature columns (dt, n_ice_layers, min_ice_thickness)
// were held constant across the training set, hence their zero standard
// deviations.

var defaultFeatureMeans = []float64{
	3600.0, 7.0, 0.01, 0.49861672, 1.1744742e-08, 7.9412307e-09,
	4.2827561e-09, 265.28452, 14.825404, 0.048517319, 0.61724384, 1.1482852,
	0.11872485, -6.7852379, 0.84710348, 0.14975243, 0.041275842, 0.0081246375,
}

var defaultFeatureStds = []float64{
	0.0, 0.0, 0.0, 0.14873519, 2.4892211e-08, 1.6854098e-08,
	9.1275384e-09, 12.107348, 47.583926, 0.29152482, 0.30587427, 0.86994741,
	0.10942219, 7.8912452, 0.19873248, 0.16842134, 0.051923467, 0.014852372,
}

var defaultOutputMeans = []float64{
	0.16124875, 0.047182539, 0.010175428, 0.27684215,
}

var defaultOutputStds = []float64{
	0.17854239, 0.058241752, 0.016874252, 0.25871346,
}

var defaultHiddenWeights = [][]float64{
	{
		0.13360977, 0.17300197, 0.092111111, 0.15123976, -0.048453353, -0.12793816,
		-0.093428956, 0.12704484, 0.2704201, -0.043859465, -0.087792652, 0.22564178,
		0.1063224, -0.19912227, 0.095430645, -0.21068867, -0.031062818, 0.50827744,
	},
	{
		0.50284873, 0.13262637, -0.19031971, 0.33682178, -0.091797222, 0.026314547,
		0.099018012, 0.040094287, 0.11373192, 0.099399911, -0.022052966, 0.16427548,
		-0.083918257, -0.25050921, 0.027409803, 0.054516271, -0.15833011, -0.25290364,
	},
	{
		0.11905098, -0.059609946, 0.14382809, 0.53388563, -0.076369025, 0.5322624,
		0.28989679, -0.0027739795, -0.026386314, -0.13562835, 0.17005423, -0.27920037,
		-0.049015117, -0.0054623194, -0.11604434, -0.27333107, -0.34319247, 0.40212454,
	},
	{
		0.38788662, -0.067946156, 0.47829642, 0.46404407, 0.37307591, 0.027732024,
		-0.047812543, -0.23429408, -0.15797286, 0.064257973, -0.11986438, 0.13158793,
		-0.019498167, -0.30211637, -0.003313581, -0.37816789, -0.28900064, 0.049184843,
	},
	{
		0.21129929, 0.071080075, -0.26026916, -0.083941274, 0.1450757, -0.0099692663,
		-0.24490653, -0.10247518, 0.14397626, 0.41515026, -0.038113146, 0.18016714,
		-0.011854085, -0.17466223, 0.15991268, -0.083762674, 0.0098032316, 0.1123648,
	},
	{
		-0.23331706, -0.1476984, 0.1380584, -0.72725134, 0.2346664, 0.0075523511,
		-0.053083144, -0.19572975, 0.17490768, -0.13513662, -0.20870959, 0.20611064,
		0.10308993, -0.25965745, -0.10382664, 0.39951617, 0.17210472, -0.1219963,
	},
	{
		-0.01485877, 0.1342904, -0.097543156, -0.4608449, -0.54259572, -0.099170027,
		-0.22781614, 0.22561358, 0.027584552, -0.28399872, -0.12566761, -0.029047008,
		-0.32756279, 0.04744727, -0.21485388, -0.3285363, 0.34198239, 0.15640492,
	},
	{
		-0.36422403, 0.082934733, -0.45425197, -0.57471103, -0.15739879, 0.12733032,
		0.48790872, 0.3158454, -0.20701707, 0.090769421, 0.13354382, -0.13996179,
		0.26270543, -0.024718893, -0.030011822, -0.20051345, 0.026063425, 0.079643061,
	},
	{
		-0.16988, 0.12906347, 0.34480219, 0.17929047, 0.04069556, 0.25720724,
		-0.11067054, 0.25689642, 0.16091595, -0.41153898, -0.21976848, 0.038392098,
		-0.46803676, -0.086068906, -0.22550586, -0.2242389, 0.026221337, 0.14572365,
	},
	{
		-0.10159782, 0.12293461, 0.1671375, -0.057198003, 0.05635481, 0.058937541,
		0.50243301, 0.19115131, 0.042861644, -0.046179418, -0.14127429, 0.23016651,
		0.050779063, -0.42897505, 0.32300072, 0.79699504, -0.055199949, -0.15806336,
	},
	{
		0.09791223, 0.18160281, -0.10472563, -0.60835267, -0.32374907, -0.29771956,
		-0.11820607, 0.22546095, -0.17159566, 0.068644825, -0.17136094, -0.046579266,
		0.23484161, -0.30420428, -0.043826922, -0.027622045, 0.25895679, 0.42685806,
	},
	{
		0.028271732, 0.31183214, 0.28909226, -0.33492109, 0.044555073, -0.091369123,
		-0.65664025, -0.26373722, 0.17776845, -0.22741179, 0.06518277, 0.17444615,
		0.044261161, 0.23532116, 0.059264294, 0.34714347, 0.075454964, -0.081343977,
	},
	{
		0.24859114, 0.20564344, -0.21280048, -0.20044052, -0.23871782, 0.25047768,
		-0.014803803, 0.11931941, 0.14700042, -0.14229526, -0.069244766, 0.13234659,
		-0.06149333, 0.015690949, -0.25470289, -0.1211859, -0.1311721, -0.26569359,
	},
	{
		0.24448802, -0.046762417, 0.21135545, -0.14904467, -0.2518296, 0.045835289,
		0.32435339, -0.34455246, -0.097797047, -0.050271776, 0.086160689, 0.34526887,
		0.26199459, -0.12822865, -0.012155268, 0.65788604, 0.16236471, -0.11459212,
	},
	{
		0.25431877, 0.27098764, -0.37868761, -0.33932088, -0.044862062, -0.13567187,
		-0.09252133, -0.11026971, 0.13715468, -0.013775556, -0.19107185, 0.34382445,
		-0.091126319, 0.20254206, -0.22784486, 0.29585337, 0.14931404, 0.11398003,
	},
	{
		-0.0044216282, 0.37096481, 0.11278392, -0.25559542, -0.21029859, -0.24172508,
		-0.25556715, -0.17687296, -0.26046965, -0.33627404, -0.13225954, -0.21362291,
		0.45472212, 0.46504628, -0.11733484, 0.048037802, -0.046584337, 0.029349896,
	},
	{
		-0.015335197, 0.31532556, -0.23286436, -0.24761813, 0.051972257, 0.35320752,
		-0.05161718, -0.011337441, 0.08099526, -0.43723664, 0.12989672, 0.18791541,
		0.025788295, 0.083777645, -0.11660908, 0.10921774, -0.12184847, -0.0021925333,
	},
	{
		-0.27871382, 0.043723798, -0.29872959, 0.040091489, 0.44823824, 0.12108651,
		0.17150247, -0.11054585, 0.1587492, -0.20886199, 0.06723916, 0.14014162,
		-0.066452473, -0.17155317, -0.17465893, 0.17504783, -0.041258192, 0.47532948,
	},
}

var defaultHiddenBias = []float64{
	0.0043122106, 0.052706756, -0.024763545, 0.10986596, 0.037352345, 0.055314183,
	0.0085434044, -0.029233874, 0.028654402, -0.03627158, -0.022921403, -0.012379048,
	0.028238843, -0.027581529, -0.034559635, 0.049785598, 0.031036584, 0.0151763,
}

var defaultOutputWeights = [][]float64{
	{
		0.16826364, 0.12676823, 0.27138364, 0.42789664, 0.12435904, 0.064627215,
		0.00012874421, 0.21944746, -0.115785, -0.16003527, -0.25852484, -0.17345296,
		0.33205469, -0.079095475, 0.0068613482, 0.08968127, -0.077601771, 0.10503884,
	},
	{
		-0.29449155, 0.26651558, -0.016023258, -0.17601209, 0.27162667, 0.15636666,
		0.31409087, 0.088535301, -0.012958624, 0.15751532, 0.010859961, 0.019100853,
		-0.26501045, 0.015420692, -0.18263504, -0.15777999, 0.36551427, -0.30328414,
	},
	{
		-0.042472222, -0.48858708, -0.29726229, -0.16675832, 0.38165574, -0.017780195,
		0.15086523, -0.36619223, -0.18572969, 0.15927947, 0.25407837, -0.3994996,
		-0.23615276, 0.056043019, -0.10573885, 0.17238914, -0.18040896, -0.0039127088,
	},
	{
		-0.010153399, 0.14286915, -0.27995985, 0.16004458, -0.2957266, -0.19591138,
		-0.040520115, 0.019713637, 5.3292082e-05, -0.1381908, -0.024141995, -0.10614996,
		0.016790257, 0.26738927, -0.21821575, -0.0081497159, -0.36641979, 0.14747631,
	},
}

var defaultOutputBias = []float64{
	0.015386847, 0.023814992, 0.068593301, -0.029667293,
}

// DefaultCheckpointID names the checkpoint compiled into the binary.
const DefaultCheckpointID = "mpnn-18x18x4-v1"

// DefaultCheckpoint returns the compiled-in trained parameters. Each call
// hands out fresh slices so callers cannot alias the tables.
func DefaultCheckpoint() model.Checkpoint {
	return model.Checkpoint{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: nn.SupportedSchemaVersion,
			CodecVersion:  nn.SupportedCodecVersion,
		},
		ID:           DefaultCheckpointID,
		Description:  "level-ice melt pond emulator, 18-18-4 selu",
		FeatureMeans: append([]float64(nil), defaultFeatureMeans...),
		FeatureStds:  append([]float64(nil), defaultFeatureStds...),
		OutputMeans:  append([]float64(nil), defaultOutputMeans...),
		OutputStds:   append([]float64(nil), defaultOutputStds...),
		Layers: []model.LayerParams{
			{
				Activation: "selu",
				Weights:    copyMatrix(defaultHiddenWeights),
				Bias:       append([]float64(nil), defaultHiddenBias...),
			},
			{
				Activation: "selu",
				Weights:    copyMatrix(defaultOutputWeights),
				Bias:       append([]float64(nil), defaultOutputBias...),
			},
		},
	}
}

func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
